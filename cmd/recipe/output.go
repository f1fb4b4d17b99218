package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matsen/recipebox/internal/recipe"
)

// CreatedTimeLayout is how creation timestamps are shown.
const CreatedTimeLayout = "2006-01-02 15:04:05 MST"

var (
	// Label style for field names in recipe blocks
	labelStyle = lipgloss.NewStyle().Bold(true)

	// Heading style for status lines
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
)

// printer renders command results. Styling is applied only when writing
// to a terminal.
type printer struct {
	out    io.Writer
	errOut io.Writer
	styled bool
}

// status writes a tab-indented message surrounded by blank lines.
func (p *printer) status(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "\n\t%s\n\n", p.heading(fmt.Sprintf(format, args...)))
}

// failure writes an error message for the given action to stderr.
func (p *printer) failure(err error, format string, args ...interface{}) {
	fmt.Fprintf(p.errOut, "\n\tError %s:\n\t%v\n\n", fmt.Sprintf(format, args...), err)
}

// recipe writes one recipe as an indented field block.
func (p *printer) recipe(r *recipe.Recipe) {
	fmt.Fprint(p.out, p.formatRecipe(r))
}

// draft writes the fields of a recipe that has not been stored yet.
func (p *printer) draft(r *recipe.Recipe) {
	var sb strings.Builder
	p.writeField(&sb, "Title", r.Title)
	p.writeField(&sb, "Description", r.Description)
	p.writeField(&sb, "Ingredients", r.IngredientList())
	p.writeField(&sb, "Instructions", r.Instructions)
	p.writeField(&sb, "Preparation Time", r.PrepTimeText()+".")
	fmt.Fprintf(p.out, "\n\t%s\n%s\n", p.heading("Creating the new recipe..."), sb.String())
}

func (p *printer) formatRecipe(r *recipe.Recipe) string {
	var sb strings.Builder
	p.writeField(&sb, "ID", r.ID)
	p.writeField(&sb, "Title", r.Title)
	p.writeField(&sb, "Description", r.Description)
	p.writeField(&sb, "Ingredients", r.IngredientList())
	p.writeField(&sb, "Instructions", r.Instructions)
	p.writeField(&sb, "Preparation Time", r.PrepTimeText()+".")
	p.writeField(&sb, "Created Time", formatCreatedTime(r.CreatedAt))
	sb.WriteString("\n")
	return sb.String()
}

func (p *printer) writeField(sb *strings.Builder, label, value string) {
	sb.WriteString("\t\t")
	sb.WriteString(p.label(label + ":"))
	sb.WriteString(" ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

func (p *printer) label(s string) string {
	if !p.styled {
		return s
	}
	return labelStyle.Render(s)
}

func (p *printer) heading(s string) string {
	if !p.styled {
		return s
	}
	return headingStyle.Render(s)
}

// formatCreatedTime shows a creation time in the local zone.
func formatCreatedTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(CreatedTimeLayout)
}
