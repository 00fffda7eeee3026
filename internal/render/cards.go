package render

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/preston-bernstein/puppy-bowl-client/internal/dom"
	"github.com/preston-bernstein/puppy-bowl-client/internal/domain/players"
)

func playerCard(p players.Player) *html.Node {
	id := strconv.Itoa(p.ID)
	return dom.Element("div", []html.Attribute{dom.A("class", CardClass), dom.A("data-id", id)},
		dom.Element("h2", nil, dom.Text(p.Name)),
		playerImage(p),
		dom.Element("p", []html.Attribute{dom.A("class", "player-breed")}, dom.Text("Breed: "+p.Breed)),
		dom.Element("p", []html.Attribute{dom.A("class", "player-team")}, dom.Text("Team: "+p.TeamLabel())),
		actionButton(DetailsClass, ActionDetails, id, DetailsPath(p.ID), "See details"),
		actionButton(RemoveClass, ActionRemove, id, RemovePath(p.ID), "Remove from roster"),
	)
}

func detailCard(p players.Player) *html.Node {
	back := actionButton("", ActionBack, "", BackPath, "Back to all players")
	dom.SetAttr(back, "id", BackButtonID)

	return dom.Element("div", []html.Attribute{dom.A("class", DetailCardClass), dom.A("data-id", strconv.Itoa(p.ID))},
		dom.Element("h2", nil, dom.Text(p.Name)),
		detailRow("ID", strconv.Itoa(p.ID)),
		detailRow("Breed", p.Breed),
		detailRow("Status", string(p.Status)),
		detailRow("Team", p.TeamLabel()),
		playerImage(p),
		detailRow("Cohort", strconv.Itoa(p.CohortID)),
		back,
	)
}

func detailRow(label, value string) *html.Node {
	return dom.Element("p", nil,
		dom.Element("strong", nil, dom.Text(label+": ")),
		dom.Text(value),
	)
}

func playerImage(p players.Player) *html.Node {
	return dom.Element("img", []html.Attribute{dom.A("src", p.Image()), dom.A("alt", p.Name)})
}

// actionButton submits the shared actions form to path.
func actionButton(class, action, id, path, label string) *html.Node {
	attrs := []html.Attribute{
		dom.A("type", "submit"),
		dom.A("form", dom.ActionsFormID),
		dom.A("formaction", path),
		dom.A("data-action", action),
	}
	if class != "" {
		attrs = append(attrs, dom.A("class", class))
	}
	if id != "" {
		attrs = append(attrs, dom.A("data-id", id))
	}
	return dom.Element("button", attrs, dom.Text(label))
}
