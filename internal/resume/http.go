package resume

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// HTTPDirectory resolves profiles from a remote resume service. It accepts
// either a bare profile object or one wrapped as {"success":..,"data":{..}}.
type HTTPDirectory struct {
	client *resty.Client
}

// NewHTTPDirectory returns a directory that calls GET {baseURL}/resumes/{id}.
func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &HTTPDirectory{client: c}
}

// Get implements Directory.
func (d *HTTPDirectory) Get(ctx context.Context, id string) (*Profile, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/resumes/{id}")
	if err != nil {
		return nil, fmt.Errorf("fetch resume %s: %w", id, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.IsError():
		return nil, fmt.Errorf("fetch resume %s: unexpected status %d", id, resp.StatusCode())
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("fetch resume %s: response is not JSON", id)
	}
	doc := gjson.Parse(body)
	if data := doc.Get("data"); data.IsObject() {
		doc = data
	}
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	p := Profile{
		ID:          doc.Get("id").String(),
		CandidateID: doc.Get("candidateId").String(),
		Name:        doc.Get("name").String(),
		Experience:  doc.Get("experience").String(),
		Education:   doc.Get("education").String(),
		Projects:    doc.Get("projects").String(),
		Summary:     doc.Get("summary").String(),
	}
	// Older services send skills as a comma separated string.
	switch skills := doc.Get("skills"); {
	case skills.IsArray():
		for _, s := range skills.Array() {
			p.Skills = append(p.Skills, s.String())
		}
	case skills.Type == gjson.String:
		p.Skills = strings.Split(skills.String(), ",")
	}
	if p.ID == "" {
		p.ID = id
	}
	p.Normalize()
	return &p, nil
}
