package render

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/preston-bernstein/puppy-bowl-client/internal/dom"
	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
)

// Form field names.
const (
	FieldName     = "name"
	FieldBreed    = "breed"
	FieldStatus   = "status"
	FieldImageURL = "imageUrl"
	FieldTeamID   = "teamId"
)

var (
	ErrMissingField = errors.New("render: required field is blank")
	ErrInvalidTeam  = errors.New("render: team id must be a positive integer")
)

// RenderNewPlayerForm rebuilds the form container. Values pre-fill the inputs
// and may be nil for an empty form. Visibility is left as it was.
func (r *Renderer) RenderNewPlayerForm(ctx context.Context, values url.Values) {
	container := r.doc.Container(dom.NewPlayerForm)
	dom.Replace(container, newPlayerForm(values))
	r.metrics.RecordRender(ViewForm, 1)
}

// ToggleForm flips the form container's visibility and reports whether it is
// now visible.
func (r *Renderer) ToggleForm(ctx context.Context) bool {
	return r.SetFormVisible(ctx, !r.FormVisible())
}

// SetFormVisible shows or hides the form container.
func (r *Renderer) SetFormVisible(ctx context.Context, visible bool) bool {
	container := r.doc.Container(dom.NewPlayerForm)
	if visible {
		dom.RemoveAttr(container, "hidden")
	} else {
		dom.SetAttr(container, "hidden", "")
	}
	logging.Info(ctx, r.logger, "form visibility changed", logging.FieldView, ViewForm, "visible", visible)
	return visible
}

// FormVisible reports whether the form container is shown.
func (r *Renderer) FormVisible() bool {
	_, hidden := dom.Attr(r.doc.Container(dom.NewPlayerForm), "hidden")
	return !hidden
}

// ShowNotice replaces any current notice in the form container with msg.
func (r *Renderer) ShowNotice(ctx context.Context, msg string) {
	container := r.doc.Container(dom.NewPlayerForm)
	removeNotices(container)
	if strings.TrimSpace(msg) == "" {
		msg = DefaultNoticeMsg
	}
	dom.Append(container, dom.Element("div", []html.Attribute{dom.A("class", NoticeClass), dom.A("role", "status")}, dom.Text(msg)))
	r.metrics.RecordRender(ViewNotice, 1)
}

// ClearNotice removes the notice and reports whether one was shown.
func (r *Renderer) ClearNotice(ctx context.Context) bool {
	return removeNotices(r.doc.Container(dom.NewPlayerForm)) > 0
}

func removeNotices(container *html.Node) int {
	notices := dom.FindAll(container, dom.WithClass(NoticeClass))
	for _, n := range notices {
		n.Parent.RemoveChild(n)
	}
	return len(notices)
}

func newPlayerForm(values url.Values) *html.Node {
	statusSelect := dom.Element("select", []html.Attribute{dom.A("id", FieldStatus), dom.A("name", FieldStatus)})
	current := values.Get(FieldStatus)
	for _, s := range players.Statuses() {
		attrs := []html.Attribute{dom.A("value", string(s))}
		if string(s) == current {
			attrs = append(attrs, dom.A("selected", ""))
		}
		dom.Append(statusSelect, dom.Element("option", attrs, dom.Text(string(s))))
	}

	return dom.Element("form", []html.Attribute{
		dom.A("id", FormID),
		dom.A("method", "post"),
		dom.A("action", SubmitPath),
	},
		label(FieldName, "Name"),
		input(FieldName, "text", values, dom.A("required", "")),
		label(FieldBreed, "Breed"),
		input(FieldBreed, "text", values, dom.A("required", "")),
		label(FieldStatus, "Status"),
		statusSelect,
		label(FieldImageURL, "Image URL (optional)"),
		input(FieldImageURL, "url", values),
		label(FieldTeamID, "Team ID (optional)"),
		input(FieldTeamID, "number", values, dom.A("min", "1")),
		dom.Element("button", []html.Attribute{dom.A("type", "submit")}, dom.Text("Add player")),
	)
}

func label(field, text string) *html.Node {
	return dom.Element("label", []html.Attribute{dom.A("for", field)}, dom.Text(text))
}

func input(field, kind string, values url.Values, extra ...html.Attribute) *html.Node {
	attrs := []html.Attribute{
		dom.A("id", field),
		dom.A("name", field),
		dom.A("type", kind),
		dom.A("value", values.Get(field)),
	}
	return dom.Element("input", append(attrs, extra...))
}

// ParseForm converts a form submission into a creation payload. A blank image
// becomes the placeholder and a blank team leaves the player a free agent.
func ParseForm(values url.Values) (players.NewPlayer, error) {
	name := strings.TrimSpace(values.Get(FieldName))
	if name == "" {
		return players.NewPlayer{}, fmt.Errorf("%w: %s", ErrMissingField, FieldName)
	}
	breed := strings.TrimSpace(values.Get(FieldBreed))
	if breed == "" {
		return players.NewPlayer{}, fmt.Errorf("%w: %s", ErrMissingField, FieldBreed)
	}
	status, err := players.ParseStatus(values.Get(FieldStatus))
	if err != nil {
		return players.NewPlayer{}, err
	}

	out := players.NewPlayer{
		Name:     name,
		Breed:    breed,
		Status:   status,
		ImageURL: strings.TrimSpace(values.Get(FieldImageURL)),
	}
	if out.ImageURL == "" {
		out.ImageURL = players.PlaceholderImageURL
	}

	if raw := strings.TrimSpace(values.Get(FieldTeamID)); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return players.NewPlayer{}, fmt.Errorf("%w: %q", ErrInvalidTeam, raw)
		}
		out.TeamID = players.TeamID(id)
	}
	return out, nil
}
