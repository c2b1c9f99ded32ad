package extract

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitesmith/crawl/pkg/models"
)

// Forms extracts every <form> on the page with its fields and inferred
// purpose. The label heuristics matter: downstream generation treats labeled
// fields as required business inputs.
func Forms(doc *goquery.Document) []models.PageForm {
	var forms []models.PageForm

	doc.Find("form").Each(func(_ int, formSel *goquery.Selection) {
		method, _ := formSel.Attr("method")
		action, _ := formSel.Attr("action")

		form := models.PageForm{
			Method: strings.ToUpper(strings.TrimSpace(method)),
			Action: strings.TrimSpace(action),
		}
		if form.Method == "" {
			form.Method = "GET"
		}

		form.Fields = extractFields(doc, formSel)
		form.FormType = classifyForm(formSel, form.Fields)

		if len(form.Fields) > 0 || form.FormType != models.FormOther {
			forms = append(forms, form)
		}
	})

	return forms
}

// extractFields walks a form's inputs, resolving a human label for each and
// merging radio/checkbox groups that share a name into one field with an
// options list.
func extractFields(doc *goquery.Document, formSel *goquery.Selection) []models.FormField {
	var fields []models.FormField
	groups := make(map[string]int) // name -> index into fields for radio/checkbox groups

	formSel.Find("input, textarea, select").Each(func(_ int, sel *goquery.Selection) {
		fieldType := fieldTypeOf(sel)
		switch fieldType {
		case "hidden", "submit", "button", "reset", "image":
			return
		}

		name, _ := sel.Attr("name")
		name = strings.TrimSpace(name)
		_, required := sel.Attr("required")

		if fieldType == "radio" || fieldType == "checkbox" {
			option := optionLabel(doc, formSel, sel)
			if name != "" {
				if idx, ok := groups[name]; ok {
					if option != "" {
						fields[idx].Options = append(fields[idx].Options, option)
					}
					return
				}
				groups[name] = len(fields)
			}
			field := models.FormField{
				Type:     fieldType,
				Name:     name,
				Label:    resolveLabel(doc, formSel, sel, name),
				Required: required,
			}
			if option != "" {
				field.Options = append(field.Options, option)
			}
			fields = append(fields, field)
			return
		}

		field := models.FormField{
			Type:     fieldType,
			Name:     name,
			Label:    resolveLabel(doc, formSel, sel, name),
			Required: required,
		}

		if goquery.NodeName(sel) == "select" {
			sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
				if text := collapseSpace(opt.Text()); text != "" {
					field.Options = append(field.Options, text)
				}
			})
		}

		fields = append(fields, field)
	})

	return fields
}

func fieldTypeOf(sel *goquery.Selection) string {
	switch goquery.NodeName(sel) {
	case "textarea":
		return "textarea"
	case "select":
		return "select"
	}
	if t, ok := sel.Attr("type"); ok && strings.TrimSpace(t) != "" {
		return strings.ToLower(strings.TrimSpace(t))
	}
	return "text"
}

// resolveLabel finds a human label for a field, trying in order:
// label[for=id] in the form then the document, a wrapping ancestor <label>,
// the immediately preceding sibling <label>, the parent's preceding-sibling
// <label>, aria-label, the aria-labelledby target's text, and finally a
// Title Case rendering of the field name.
func resolveLabel(doc *goquery.Document, formSel, sel *goquery.Selection, name string) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		selector := `label[for="` + id + `"]`
		if label := formSel.Find(selector).First(); label.Length() > 0 {
			if text := collapseSpace(label.Text()); text != "" {
				return text
			}
		}
		if label := doc.Find(selector).First(); label.Length() > 0 {
			if text := collapseSpace(label.Text()); text != "" {
				return text
			}
		}
	}

	if wrapper := sel.ParentsFiltered("label").First(); wrapper.Length() > 0 {
		clone := wrapper.Clone()
		clone.Find("input, textarea, select").Remove()
		if text := collapseSpace(clone.Text()); text != "" {
			return text
		}
	}

	if prev := sel.Prev(); prev.Length() > 0 && goquery.NodeName(prev) == "label" {
		if text := collapseSpace(prev.Text()); text != "" {
			return text
		}
	}

	if parentPrev := sel.Parent().Prev(); parentPrev.Length() > 0 && goquery.NodeName(parentPrev) == "label" {
		if text := collapseSpace(parentPrev.Text()); text != "" {
			return text
		}
	}

	if aria, ok := sel.Attr("aria-label"); ok {
		if text := collapseSpace(aria); text != "" {
			return text
		}
	}

	if labelledBy, ok := sel.Attr("aria-labelledby"); ok && labelledBy != "" {
		if target := doc.Find("#" + strings.Fields(labelledBy)[0]).First(); target.Length() > 0 {
			if text := collapseSpace(target.Text()); text != "" {
				return text
			}
		}
	}

	return humanizeFieldName(name)
}

// optionLabel resolves the display text for one radio/checkbox input,
// preferring its own label and falling back to its value attribute.
func optionLabel(doc *goquery.Document, formSel, sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		if label := formSel.Find(`label[for="` + id + `"]`).First(); label.Length() > 0 {
			if text := collapseSpace(label.Text()); text != "" {
				return text
			}
		}
	}
	if wrapper := sel.ParentsFiltered("label").First(); wrapper.Length() > 0 {
		clone := wrapper.Clone()
		clone.Find("input").Remove()
		if text := collapseSpace(clone.Text()); text != "" {
			return text
		}
	}
	if value, ok := sel.Attr("value"); ok {
		return collapseSpace(value)
	}
	return ""
}

// humanizeFieldName renders a machine field name ("firstName", "phone_number",
// "items[]") as Title Case words.
func humanizeFieldName(name string) string {
	name = strings.TrimSuffix(name, "[]")
	if name == "" {
		return ""
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '[' || r == ']':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(unicode.ToLower(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// classifyForm infers a form's purpose from its field composition. Rules are
// evaluated in priority order; the first match wins.
func classifyForm(formSel *goquery.Selection, fields []models.FormField) models.FormType {
	var (
		hasPassword, hasEmail, hasPhone, hasMessage, hasName bool
		hasSearch, hasDate, hasBookingName, hasQuoteName     bool
	)

	for _, field := range fields {
		nameAndLabel := strings.ToLower(field.Name + " " + field.Label)
		switch field.Type {
		case "password":
			hasPassword = true
		case "email":
			hasEmail = true
		case "tel":
			hasPhone = true
		case "search":
			hasSearch = true
		case "date", "datetime-local", "time":
			hasDate = true
		case "textarea":
			hasMessage = true
		}
		if containsAny(nameAndLabel, []string{"email", "e-mail"}) {
			hasEmail = true
		}
		if containsAny(nameAndLabel, []string{"phone", "tel"}) {
			hasPhone = true
		}
		if containsAny(nameAndLabel, []string{"message", "comment", "inquiry", "enquiry"}) {
			hasMessage = true
		}
		if containsAny(nameAndLabel, []string{"name"}) && !containsAny(nameAndLabel, []string{"username", "user_name", "user-name"}) {
			hasName = true
		}
		if containsAny(nameAndLabel, []string{"search", "query", " q "}) || field.Name == "q" || field.Name == "s" {
			hasSearch = true
		}
		if containsAny(nameAndLabel, []string{"date", "booking", "appointment", "reservation", "checkin", "check-in"}) {
			hasBookingName = true
		}
		if containsAny(nameAndLabel, []string{"quote", "estimate", "budget"}) {
			hasQuoteName = true
		}
	}

	action, _ := formSel.Attr("action")
	class, _ := formSel.Attr("class")
	id, _ := formSel.Attr("id")
	formMarkers := strings.ToLower(action + " " + class + " " + id)

	switch {
	case hasPassword && (hasEmail || hasName) && len(fields) <= 4:
		return models.FormLogin
	case hasPassword && len(fields) > 3:
		return models.FormSignup
	case hasSearch || containsAny(formMarkers, []string{"search"}):
		return models.FormSearch
	case hasEmail && len(fields) <= 2 && !hasMessage:
		return models.FormNewsletter
	case hasDate || hasBookingName || containsAny(formMarkers, []string{"booking", "appointment", "reservation"}):
		return models.FormBooking
	case hasQuoteName || containsAny(formMarkers, []string{"quote", "estimate"}):
		return models.FormQuote
	case (hasName || hasEmail) && hasMessage:
		return models.FormContact
	case hasEmail || hasPhone || hasMessage:
		return models.FormContact
	default:
		return models.FormOther
	}
}
