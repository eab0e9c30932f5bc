package handler

import (
	"context"
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdpages/internal/logfields"
)

type navItem struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Href  string `yaml:"href"`
}

type headerConfig struct {
	Left  []navItem `yaml:"left"`
	Right []navItem `yaml:"right"`
}

// renderHeader emits the navigation bar. Icons that cannot be loaded fall
// back to their label so one broken asset does not drop the whole header.
func renderHeader(ctx context.Context, req Request) (string, error) {
	var cfg headerConfig
	if err := decodeConfig(req, &cfg); err != nil {
		return "", err
	}

	ul := element(atom.Ul)
	for _, item := range cfg.Left {
		ul.AppendChild(navEntry(ctx, req, item, false))
	}
	for _, item := range cfg.Right {
		ul.AppendChild(navEntry(ctx, req, item, true))
	}

	nav := element(atom.Nav, attr("class", "navbar"), attr("role", "navigation"))
	nav.AppendChild(ul)
	return renderNode(nav)
}

func navEntry(ctx context.Context, req Request, item navItem, right bool) *html.Node {
	li := element(atom.Li)
	if right {
		li.Attr = append(li.Attr, attr("style", "float:right"))
	}
	a := element(atom.A, attr("href", item.Href))
	a.AppendChild(navContent(ctx, req, item))
	li.AppendChild(a)
	return li
}

func navContent(ctx context.Context, req Request, item navItem) *html.Node {
	label := item.Label
	if item.Icon == "" {
		return textNode(label)
	}
	if label == "" {
		label = item.Icon
	}

	uri, err := req.Site.Assets().DataURI(item.Icon)
	if err != nil {
		slog.WarnContext(ctx, "Header icon unavailable, using label",
			logfields.Document(req.Document),
			logfields.Path(item.Icon),
			logfields.Error(err))
		return textNode(label)
	}
	return element(atom.Img, attr("src", uri), attr("alt", label))
}
