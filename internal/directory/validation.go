package directory

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"communityconnect.org/directorydb"
	"communityconnect.org/internal/geo"
	"communityconnect.org/internal/utils"
)

const (
	maxFieldLength       = 200
	maxDescriptionLength = 2000
	maxImageURLLength    = 2048
)

// NewBusiness is the input accepted when registering a business.
type NewBusiness struct {
	Name        string
	Category    string
	Location    string
	Description string
	Phone       string
	WhatsApp    string
	Hours       string
	Image       *string
	Latitude    *float64
	Longitude   *float64
}

// ValidationError lists the problems found with a NewBusiness, keyed by the
// wire name of the offending field.
type ValidationError struct {
	FieldErrors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return "invalid business: " + strings.Join(fields, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

// toBusiness sanitizes nb and converts it into a row ready for insertion.
// It returns a *ValidationError when any field is rejected.
func (nb NewBusiness) toBusiness() (directorydb.Business, error) {
	verr := &ValidationError{}

	required := func(field, value string, maxLen int) string {
		clean := utils.SanitizeInput(value)
		switch {
		case clean == "":
			verr.add(field, fmt.Sprintf("%s is required", field))
		case len(clean) > maxLen:
			verr.add(field, fmt.Sprintf("%s too long (max %d characters)", field, maxLen))
		}
		return clean
	}

	b := directorydb.Business{
		Name:        required("name", nb.Name, maxFieldLength),
		Category:    required("category", nb.Category, maxFieldLength),
		Location:    required("location", nb.Location, maxFieldLength),
		Description: required("description", nb.Description, maxDescriptionLength),
		Phone:       required("phone", nb.Phone, maxFieldLength),
		WhatsApp:    required("whatsapp", nb.WhatsApp, maxFieldLength),
		Hours:       required("hours", nb.Hours, maxFieldLength),
		Rating:      DefaultRating,
	}

	if nb.Image != nil {
		image := strings.TrimSpace(*nb.Image)
		if image != "" {
			if err := validateImageURL(image); err != nil {
				verr.add("image", err.Error())
			}
			b.Image = &image
		}
	}

	switch {
	case nb.Latitude == nil && nb.Longitude == nil:
	case nb.Latitude == nil:
		verr.add("latitude", "latitude is required when longitude is given")
	case nb.Longitude == nil:
		verr.add("longitude", "longitude is required when latitude is given")
	default:
		if err := geo.ValidateLatitude(*nb.Latitude); err != nil {
			verr.add("latitude", err.Error())
		}
		if err := geo.ValidateLongitude(*nb.Longitude); err != nil {
			verr.add("longitude", err.Error())
		}
		lat, lon := *nb.Latitude, *nb.Longitude
		b.Latitude, b.Longitude = &lat, &lon
	}

	if len(verr.FieldErrors) > 0 {
		return directorydb.Business{}, verr
	}
	return b, nil
}

func validateImageURL(raw string) error {
	if len(raw) > maxImageURLLength {
		return fmt.Errorf("image too long (max %d characters)", maxImageURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("image must be an http or https URL")
	}
	return nil
}
