package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	budgetdomain "budget-app-go/internal/domain/budget"
	"budget-app-go/internal/domain/palette"
	"budget-app-go/internal/transport/httpserver/web"
)

var pageFiles = []string{
	"login.html",
	"register.html",
	"index.html",
	"edit_transaction.html",
	"categories.html",
	"circles.html",
	"goals.html",
}

var partialFiles = []string{
	"templates/layout.html",
	"templates/transaction_form.html",
	"templates/category_form.html",
}

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	return newRenderer(web.Templates)
}

func newRenderer(files fs.FS) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		patterns := append(append([]string{}, partialFiles...), "templates/"+name)
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	if err := h.views.Render(w, status, name, data); err != nil {
		h.internalError(w, "render: "+name+" failed", err)
	}
}

type optionSet struct {
	Choices  []budgetdomain.CategoryChoice
	Selected string
}

type paletteSet struct {
	Choices  []palette.Choice
	Selected string
}

var templateFuncs = template.FuncMap{
	"amount": budgetdomain.FormatAmount,
	"date":   formatDate,
	"deref": func(value *string) string {
		if value == nil {
			return ""
		}
		return *value
	},
	"recurrence": describeRecurrence,
	"options": func(choices []budgetdomain.CategoryChoice, selected string) optionSet {
		return optionSet{Choices: choices, Selected: selected}
	},
	"palette": func(choices []palette.Choice, selected string) paletteSet {
		return paletteSet{Choices: choices, Selected: selected}
	},
}

// describeRecurrence renders e.g. "every 2 months until 2024-12-31".
func describeRecurrence(tx budgetdomain.Transaction) string {
	if !tx.Recurrence {
		return ""
	}

	unit := budgetdomain.DefaultRecurrenceUnit
	if tx.UnitsOfRecurrence != nil {
		unit = *tx.UnitsOfRecurrence
	}
	interval := budgetdomain.DefaultRecurrenceInterval
	if tx.IntervalOfRecurrence != nil {
		interval = *tx.IntervalOfRecurrence
	}

	var b strings.Builder
	b.WriteString("every ")
	if interval == 1 {
		b.WriteString(strings.TrimSuffix(string(unit), "s"))
	} else {
		b.WriteString(strconv.Itoa(interval))
		b.WriteString(" ")
		b.WriteString(string(unit))
	}
	if tx.RecurrenceEndDate != nil {
		b.WriteString(" until ")
		b.WriteString(tx.RecurrenceEndDate.Format(time.DateOnly))
	}
	return b.String()
}
