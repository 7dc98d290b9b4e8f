package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/horsepower/internal/domain/model"
)

// number decodes a JSON number or a numeric string. Anything else is zero,
// the same coercion the dataset loader applies to cells.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = 0
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	text := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		text = strings.TrimSpace(s)
	}
	f, _ := model.ParseNumber(text)
	*n = number(f)
	return nil
}

type subjectRequest struct {
	Name         string `json:"name"`
	GripBottom   number `json:"grip_bottom"`
	GripTop      number `json:"grip_top"`
	VerticalJump number `json:"vertical_jump"`
	MedBallSitUp number `json:"med_ball_situp"`
	MedBallChest number `json:"med_ball_chest"`
}

func (s subjectRequest) toModel() model.Subject {
	return model.Subject{
		Name:         s.Name,
		GripBottom:   float64(s.GripBottom),
		GripTop:      float64(s.GripTop),
		VerticalJump: float64(s.VerticalJump),
		MedBallSitUp: float64(s.MedBallSitUp),
		MedBallChest: float64(s.MedBallChest),
	}
}

type subjectOnlyRequest struct {
	Subject subjectRequest `json:"subject"`
}

type groupRequest struct {
	Subject subjectRequest `json:"subject"`
	GroupBy string         `json:"group_by"`
	Value   string         `json:"value"`
}

type playerRequest struct {
	Subject   subjectRequest `json:"subject"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
}

type positionRequest struct {
	Subject  subjectRequest `json:"subject"`
	Level    string         `json:"level"`
	Position string         `json:"position"`
}

type validateResponse struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

// decode reads a single JSON object of at most limit bytes into v.
func decode(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must contain a single JSON object", ErrBadRequest)
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: missing %s", ErrBadRequest, name)
	}
	return nil
}
