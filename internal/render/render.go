// Package render writes catalog views as plain terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/planbrowser/internal/catalog"
	"github.com/dbsmedya/planbrowser/internal/filter"
	"github.com/dbsmedya/planbrowser/internal/plan"
)

// Column markers in the list table.
const (
	CompareMark  = "C"
	FavoriteMark = "*"
)

// maxNameWidth caps the name column so a long name cannot push the table
// past a normal terminal width.
const maxNameWidth = 40

var (
	headerStyle   = color.New(color.OpBold)
	selectedStyle = color.New(color.FgCyan)
	favoriteStyle = color.New(color.FgRed)
	noticeStyle   = color.New(color.FgYellow)
	mutedStyle    = color.New(color.FgGray)
)

// Marker reports selection state for a plan id.
type Marker interface {
	IsCompared(id string) bool
	IsFavorite(id string) bool
}

// Renderer writes to w, with ANSI colors when colorize is set.
type Renderer struct {
	w        io.Writer
	colorize bool
}

// New returns a Renderer over w.
func New(w io.Writer, colorize bool) *Renderer {
	return &Renderer{w: w, colorize: colorize}
}

// List writes the summary line and one row per plan in v.
func (r *Renderer) List(v catalog.View, marks Marker) {
	r.printf("%s\n", r.paint(headerStyle, v.Summary()))
	if !v.Criteria.IsZero() || v.Search != "" {
		r.printf("%s\n", r.paint(mutedStyle, fmt.Sprintf("Filters: %s search=%q", v.Criteria, v.Search)))
	}
	if len(v.Plans) == 0 {
		return
	}
	r.printf("\n")

	t := newTable("", "", "ID", "Carrier", "Name", "Type", "Rating", "Premium", "Deductible", "MOOP")
	for _, p := range v.Plans {
		compared := marks != nil && marks.IsCompared(p.ID)
		favorite := marks != nil && marks.IsFavorite(p.ID)
		t.addRow([]cell{
			{text: mark(compared, CompareMark), style: selectedStyle},
			{text: mark(favorite, FavoriteMark), style: favoriteStyle},
			{text: p.ID},
			{text: p.Carrier},
			{text: runewidth.Truncate(p.Name, maxNameWidth, "...")},
			{text: p.Type},
			{text: Rating(p.Rating)},
			{text: Money(p.Premium)},
			{text: Money(p.Deductible)},
			{text: Money(p.Moops)},
		})
	}
	t.write(r)
}

// Plan writes every field of p.
func (r *Renderer) Plan(p plan.Plan, marks Marker) {
	r.printf("%s\n", r.paint(headerStyle, p.Name))
	r.printf("%s\n\n", r.paint(mutedStyle, p.ID))

	t := newTable("", "")
	t.plain = true
	for _, row := range detailRows(p) {
		t.addRow([]cell{{text: row[0] + ":"}, {text: row[1]}})
	}
	if marks != nil {
		t.addRow([]cell{{text: "Compare:"}, {text: yesNo(marks.IsCompared(p.ID)), style: selectedStyle}})
		t.addRow([]cell{{text: "Favorite:"}, {text: yesNo(marks.IsFavorite(p.ID)), style: favoriteStyle}})
	}
	t.write(r)
}

// Compare writes plans side by side, one column per plan.
func (r *Renderer) Compare(plans []plan.Plan) {
	if len(plans) == 0 {
		r.printf("No plans selected for comparison\n")
		return
	}
	r.printf("%s\n\n", r.paint(headerStyle, fmt.Sprintf("Comparing %d Plans", len(plans))))

	headers := []string{""}
	for _, p := range plans {
		headers = append(headers, p.ID)
	}
	t := newTable(headers...)

	rows := make([][]cell, 0, 16)
	for _, p := range plans {
		for i, row := range detailRows(p) {
			if i >= len(rows) {
				rows = append(rows, []cell{{text: row[0], style: headerStyle}})
			}
			rows[i] = append(rows[i], cell{text: row[1]})
		}
	}
	for _, row := range rows {
		t.addRow(row)
	}
	t.write(r)
}

// Favorites writes the favorite plans.
func (r *Renderer) Favorites(plans []plan.Plan) {
	if len(plans) == 0 {
		r.printf("No favorite plans\n")
		return
	}
	r.printf("%s\n\n", r.paint(headerStyle, fmt.Sprintf("%d Favorite Plans", len(plans))))
	t := newTable("ID", "Carrier", "Name", "Premium")
	for _, p := range plans {
		t.addRow([]cell{{text: p.ID}, {text: p.Carrier}, {text: p.Name}, {text: Money(p.Premium) + "/mo"}})
	}
	t.write(r)
}

// Options writes the values each selector accepts.
func (r *Renderer) Options(o filter.Options) {
	r.printf("%s %s\n", r.paint(headerStyle, "Carrier:"), strings.Join(o.Carriers, ", "))
	r.printf("%s %s\n", r.paint(headerStyle, "Type:   "), strings.Join(o.Types, ", "))
	r.printf("%s %s\n", r.paint(headerStyle, "Feature:"), strings.Join(o.Features, ", "))
}

// Notice writes a warning line.
func (r *Renderer) Notice(msg string) {
	r.printf("%s %s\n", r.paint(noticeStyle, "warning:"), msg)
}

// Money formats a currency amount the way the catalog shows it.
func Money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// Rating formats a star rating with one decimal.
func Rating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func detailRows(p plan.Plan) [][2]string {
	return [][2]string{
		{"Name", p.Name},
		{"Carrier", p.Carrier},
		{"Type", p.Type},
		{"Rating", Rating(p.Rating)},
		{"Premium", Money(p.Premium) + "/mo"},
		{"Deductible", Money(p.Deductible)},
		{"MOOP", Money(p.Moops)},
		{"Dental", Money(p.DentalMax) + " Max"},
		{"Vision", Money(p.Vision)},
		{"Hearing", Money(p.Hearing) + "/ear"},
		{"Fitness", p.Fitness},
		{"Rebate", yesNo(p.Rebate)},
		{"No Commission", yesNo(p.NoCommission)},
		{"Logo", p.Logo},
	}
}

func (r *Renderer) paint(s color.Style, text string) string {
	if !r.colorize || text == "" {
		return text
	}
	return s.Sprint(text)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func mark(on bool, m string) string {
	if on {
		return m
	}
	return ""
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
