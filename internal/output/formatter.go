// Package output renders tour-guide responses for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Zereker/tourguide"
)

// Formatter renders a response.
type Formatter interface {
	Format(resp tourguide.Response) (string, error)
}

// NewFormatter returns a Formatter for the given format string.
// Supported formats: "text" (default), "json", "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return JSONFormatter{}
	case "yaml":
		return YAMLFormatter{}
	default:
		return NewTextFormatter()
	}
}

// JSONFormatter prints the response in its wire encoding.
type JSONFormatter struct{}

func (JSONFormatter) Format(resp tourguide.Response) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// YAMLFormatter prints a flattened view of the response.
type YAMLFormatter struct{}

type responseView struct {
	Kind      string   `yaml:"kind"`
	Reason    string   `yaml:"reason,omitempty"`
	Location  string   `yaml:"location,omitempty"`
	Locations []string `yaml:"locations,omitempty"`
}

func (YAMLFormatter) Format(resp tourguide.Response) (string, error) {
	v := responseView{Kind: resp.Kind.String()}
	switch resp.Kind {
	case tourguide.RespFailure:
		v.Reason = resp.Reason.String()
	case tourguide.RespWhere:
		v.Location = resp.Location.String()
	case tourguide.RespList:
		v.Locations = names(resp.Locations)
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TextFormatter prints a styled, human readable line per response.
type TextFormatter struct {
	label   lipgloss.Style
	place   lipgloss.Style
	failure lipgloss.Style
	index   lipgloss.Style
}

// NewTextFormatter returns a TextFormatter with the default styles.
func NewTextFormatter() TextFormatter {
	return TextFormatter{
		label:   lipgloss.NewStyle().Bold(true),
		place:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		index:   lipgloss.NewStyle().Faint(true).Width(4).Align(lipgloss.Right),
	}
}

func (f TextFormatter) Format(resp tourguide.Response) (string, error) {
	switch resp.Kind {
	case tourguide.RespSuccess:
		return f.label.Render("ok") + "\n", nil
	case tourguide.RespDone:
		return f.label.Render("done") + ": the itinerary is complete\n", nil
	case tourguide.RespFailure:
		return f.failure.Render("failure") + ": " + resp.Reason.String() + "\n", nil
	case tourguide.RespWhere:
		return f.label.Render("where") + ": " + f.place.Render(resp.Location.String()) + "\n", nil
	case tourguide.RespList:
		if len(resp.Locations) == 0 {
			return "The itinerary is empty.\n", nil
		}
		var b strings.Builder
		for i, l := range resp.Locations {
			b.WriteString(f.index.Render(fmt.Sprintf("%d.", i)))
			b.WriteString(" ")
			b.WriteString(f.place.Render(l.String()))
			b.WriteString("\n")
		}
		return b.String(), nil
	}
	return "", errors.Errorf("unknown response kind %s", resp.Kind)
}

func names(locs []tourguide.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.String()
	}
	return out
}
