package campservice

import (
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/campfilter"
	"github.com/dalemusser/campanion/internal/app/system/htmlsanitize"
	"github.com/dalemusser/campanion/internal/app/system/inputval"
	"github.com/dalemusser/campanion/internal/app/system/normalize"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
)

// CampInput is the create/edit form. Dates are calendar days in the
// service's zone, formatted 2006-01-02; empty means unscheduled.
type CampInput struct {
	Name        string   `json:"name" validate:"required,max=200" label:"Name"`
	Description string   `json:"description" validate:"max=20000" label:"Description"`
	Location    string   `json:"location" validate:"max=200" label:"Location"`
	StartDate   string   `json:"startDate" label:"Start date"`
	EndDate     string   `json:"endDate" label:"End date"`
	Price       float64  `json:"price" validate:"gte=0" label:"Price"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,httpurl" label:"Image URL"`
	Activities  []string `json:"activities" validate:"dive,max=100" label:"Activities"`
	OrganizerID string   `json:"organizerId" label:"Organizer"`
	Status      string   `json:"status" label:"Status"`
}

// InputFromCamp fills a form from a stored camp.
func InputFromCamp(c models.Camp, loc *time.Location) CampInput {
	in := CampInput{
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Price:       c.Price,
		ImageURL:    c.ImageURL,
		Activities:  append([]string(nil), c.Activities...),
		OrganizerID: c.OrganizerID,
		Status:      c.Status,
	}
	if c.StartDate != nil {
		in.StartDate = c.StartDate.In(loc).Format(campfilter.DateLayout)
	}
	if c.EndDate != nil {
		in.EndDate = c.EndDate.In(loc).Format(campfilter.DateLayout)
	}
	return in
}

// campFields is a validated CampInput.
type campFields struct {
	name, description, location string
	start, end                  *time.Time
	price                       float64
	imageURL                    string
	activities                  []string
	organizerID                 string
	status                      string
}

// parseCampInput validates in. initial restricts the status to the values a
// new camp may start in; an empty status then means draft. On edit an empty
// status keeps the stored one (returned as "").
func parseCampInput(in CampInput, loc *time.Location, initial bool) (campFields, error) {
	ve := &apperr.ValidationError{}
	if res := inputval.Validate(in); res.HasErrors() {
		for _, e := range res.Errors {
			ve.Add(e.Field, e.Message)
		}
	}

	f := campFields{
		name:        normalize.Name(htmlsanitize.PlainText(in.Name)),
		description: htmlsanitize.Sanitize(strings.TrimSpace(in.Description)),
		location:    normalize.Name(htmlsanitize.PlainText(in.Location)),
		price:       in.Price,
		imageURL:    strings.TrimSpace(in.ImageURL),
		activities:  normalize.Activities(in.Activities),
		organizerID: normalize.OrganizerID(in.OrganizerID),
	}
	if f.name == "" && in.Name != "" {
		ve.Add("name", "Name is required.")
	}

	var err error
	if f.start, err = parseDay(in.StartDate, loc); err != nil {
		ve.Add("startDate", "Start date must be a date like 2024-07-01.")
	}
	if f.end, err = parseDay(in.EndDate, loc); err != nil {
		ve.Add("endDate", "End date must be a date like 2024-07-01.")
	}
	if f.start != nil && f.end != nil && f.end.Before(*f.start) {
		ve.Add("endDate", "End date must be on or after the start date.")
	}

	st, ok := status.Parse(in.Status)
	switch {
	case in.Status == "" && initial:
		f.status = status.Draft
	case in.Status == "":
	case !ok:
		ve.Add("status", "Status must be one of: draft, active, archive.")
	case initial && !status.Initial(st):
		ve.Add("status", "A new camp must start as draft or active.")
	default:
		f.status = st
	}

	return f, ve.OrNil()
}

func parseDay(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(campfilter.DateLayout, raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// apply copies validated fields onto c. The organizer snapshot is applied
// separately.
func (f campFields) apply(c *models.Camp) {
	c.Name = f.name
	c.Description = f.description
	c.Location = f.location
	c.StartDate = f.start
	c.EndDate = f.end
	c.Price = f.price
	c.ImageURL = f.imageURL
	if c.ImageURL == "" {
		c.ImageURL = models.DefaultCampImageURL
	}
	c.Activities = f.activities
	if f.status != "" {
		c.Status = f.status
	}
}

// OrganizerInput is the organizer create/edit form.
type OrganizerInput struct {
	Name        string `json:"name" validate:"required,max=200" label:"Name"`
	Link        string `json:"link" validate:"omitempty,httpurl" label:"Link"`
	Description string `json:"description" validate:"max=5000" label:"Description"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,httpurl" label:"Avatar URL"`
}

func parseOrganizerInput(in OrganizerInput) (models.Organizer, error) {
	if err := inputval.Validate(in).Err(); err != nil {
		return models.Organizer{}, err
	}
	o := models.Organizer{
		Name:        normalize.Name(htmlsanitize.PlainText(in.Name)),
		Link:        strings.TrimSpace(in.Link),
		Description: htmlsanitize.PlainText(in.Description),
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
	}
	if o.Name == "" {
		return models.Organizer{}, apperr.Invalid("name", "Name is required.")
	}
	if o.AvatarURL == "" {
		o.AvatarURL = models.PlaceholderAvatarURL(o.Name)
	}
	return o, nil
}
