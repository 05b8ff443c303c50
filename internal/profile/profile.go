package profile

import (
	"errors"
	"fmt"
	"strings"

	"moviedex/internal/library"
)

var ErrInvalid = errors.New("invalid profile")

type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	Job            string `json:"job"`
	Location       string `json:"location"`
	Avatar         string `json:"avatar"`
	Cover          string `json:"cover"`
	ProfilePicture string `json:"profilePicture"`
}

type Stats = library.Counts

// View is a profile together with the list counts shown beside it.
type View struct {
	Profile Profile `json:"profile"`
	Stats   Stats   `json:"stats"`
}

// UpdateCommand is a partial update: nil fields are left alone.
type UpdateCommand struct {
	Name           *string `json:"name" validate:"omitnil,min=1,max=80"`
	Email          *string `json:"email" validate:"omitnil,email"`
	Bio            *string `json:"bio" validate:"omitempty,max=500"`
	Job            *string `json:"job" validate:"omitempty,max=80"`
	Location       *string `json:"location" validate:"omitempty,max=80"`
	Avatar         *string `json:"avatar" validate:"omitempty,url"`
	Cover          *string `json:"cover" validate:"omitempty,url"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
}

func (c UpdateCommand) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Bio == nil && c.Job == nil &&
		c.Location == nil && c.Avatar == nil && c.Cover == nil && c.ProfilePicture == nil
}

// trimmed returns a copy with surrounding whitespace removed from every set
// field.
func (c UpdateCommand) trimmed() UpdateCommand {
	for _, f := range []**string{&c.Name, &c.Email, &c.Bio, &c.Job, &c.Location, &c.Avatar, &c.Cover, &c.ProfilePicture} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return c
}

func (c UpdateCommand) apply(p Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, c.Name)
	set(&p.Email, c.Email)
	set(&p.Bio, c.Bio)
	set(&p.Job, c.Job)
	set(&p.Location, c.Location)
	set(&p.Avatar, c.Avatar)
	set(&p.Cover, c.Cover)
	set(&p.ProfilePicture, c.ProfilePicture)
	return p
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field an update got wrong. It matches
// ErrInvalid under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
