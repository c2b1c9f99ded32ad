package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sitesmith/crawl/pkg/models"
)

// Source weights. An explicit theme-color declaration is a deliberate brand
// signal; CSS custom properties are authored variables; everything else
// counts by occurrence.
const (
	weightThemeColor = 100
	weightCustomProp = 5
	weightOccurrence = 1
)

const (
	neutralSaturation   = 0.10
	backgroundLuminance = 0.70
	textLuminance       = 0.30
	maxRankedColors     = 10
)

var (
	themeColorPattern   = regexp.MustCompile(`(?i)<meta[^>]*name=["']theme-color["'][^>]*content=["']([^"']+)["']|<meta[^>]*content=["']([^"']+)["'][^>]*name=["']theme-color["']`)
	styleBlockPattern   = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)
	inlineStylePattern  = regexp.MustCompile(`(?i)\sstyle=["']([^"']*)["']`)
	customPropPattern   = regexp.MustCompile(`--[\w-]+\s*:\s*(#[0-9a-fA-F]{3,6}\b|rgba?\([^)]*\))`)
	colorLiteralPattern = regexp.MustCompile(`#[0-9a-fA-F]{6}\b|#[0-9a-fA-F]{3}\b|rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*[\d.]+\s*)?\)`)
	fontFamilyPattern   = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)
)

// genericFontFamilies are excluded from brand font candidates.
var genericFontFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "inherit": true, "initial": true,
	"unset": true, "var": true,
}

// ColorsFromHTML extracts and scores brand colors across the raw HTML of the
// whole page set. It works on raw strings rather than a parsed DOM because
// colors live in <style> blocks and inline attributes that a structural walk
// may normalize away.
func ColorsFromHTML(htmlPages []string) models.BrandColors {
	weights := make(map[string]int)
	var order []string // first-seen order for stable tie-breaks

	add := func(raw string, weight int) {
		hex, ok := NormalizeColor(raw)
		if !ok {
			return
		}
		if _, seen := weights[hex]; !seen {
			order = append(order, hex)
		}
		weights[hex] += weight
	}

	for _, html := range htmlPages {
		for _, match := range themeColorPattern.FindAllStringSubmatch(html, -1) {
			value := match[1]
			if value == "" {
				value = match[2]
			}
			add(value, weightThemeColor)
		}

		for _, match := range customPropPattern.FindAllStringSubmatch(html, -1) {
			add(match[1], weightCustomProp)
		}

		for _, match := range styleBlockPattern.FindAllStringSubmatch(html, -1) {
			for _, literal := range colorLiteralPattern.FindAllString(match[1], -1) {
				add(literal, weightOccurrence)
			}
		}

		for _, match := range inlineStylePattern.FindAllStringSubmatch(html, -1) {
			for _, literal := range colorLiteralPattern.FindAllString(match[1], -1) {
				add(literal, weightOccurrence)
			}
		}
	}

	return classifyColors(weights, order)
}

func classifyColors(weights map[string]int, order []string) models.BrandColors {
	rank := make(map[string]int, len(order))
	for i, hex := range order {
		rank[hex] = i
	}

	ranked := make([]models.RankedColor, 0, len(weights))
	for hex, weight := range weights {
		ranked = append(ranked, models.RankedColor{Hex: hex, Weight: weight})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return rank[ranked[i].Hex] < rank[ranked[j].Hex]
	})

	colors := models.BrandColors{}
	if len(ranked) > maxRankedColors {
		colors.AllColors = ranked[:maxRankedColors]
	} else {
		colors.AllColors = ranked
	}

	// Primary/secondary/accent come from non-neutral colors only; grays,
	// black, and white dominate by frequency but are chrome, not brand.
	var brand []string
	for _, rc := range ranked {
		if !IsNeutral(rc.Hex) {
			brand = append(brand, rc.Hex)
		}
	}
	if len(brand) > 0 {
		colors.Primary = brand[0]
	}
	if len(brand) > 1 {
		colors.Secondary = brand[1]
	}
	if len(brand) > 2 {
		colors.Accent = brand[2]
	}

	for _, rc := range ranked {
		if Luminance(rc.Hex) > backgroundLuminance {
			colors.Background = rc.Hex
			break
		}
	}
	for _, hex := range brand {
		if Luminance(hex) < textLuminance {
			colors.Text = hex
			break
		}
	}

	return colors
}

// NormalizeColor converts a hex or rgb()/rgba() literal to 6-digit uppercase
// hex. Returns false for literals it cannot parse.
func NormalizeColor(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if strings.HasPrefix(raw, "#") {
		hex := raw[1:]
		switch len(hex) {
		case 3:
			var b strings.Builder
			for _, c := range hex {
				b.WriteRune(c)
				b.WriteRune(c)
			}
			hex = b.String()
		case 6:
		default:
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + strings.ToUpper(hex), true
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		start := strings.Index(raw, "(")
		end := strings.Index(raw, ")")
		if start == -1 || end <= start {
			return "", false
		}
		parts := strings.Split(raw[start+1:end], ",")
		if len(parts) < 3 {
			return "", false
		}
		var channels [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return "", false
			}
			channels[i] = v
		}
		return fmt.Sprintf("#%02X%02X%02X", channels[0], channels[1], channels[2]), true
	}

	return "", false
}

func channels(hex string) (r, g, b float64) {
	if len(hex) != 7 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseUint(hex[1:3], 16, 8)
	gv, _ := strconv.ParseUint(hex[3:5], 16, 8)
	bv, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return float64(rv) / 255, float64(gv) / 255, float64(bv) / 255
}

// Saturation returns the HSL saturation of a normalized hex color.
func Saturation(hex string) float64 {
	r, g, b := channels(hex)
	max := maxOf(r, g, b)
	min := minOf(r, g, b)
	if max == min {
		return 0
	}
	l := (max + min) / 2
	d := max - min
	if l > 0.5 {
		return d / (2 - max - min)
	}
	return d / (max + min)
}

// Luminance returns the ITU-R BT.601 luminance of a normalized hex color.
func Luminance(hex string) float64 {
	r, g, b := channels(hex)
	return 0.299*r + 0.587*g + 0.114*b
}

// IsNeutral reports whether a color is near-zero saturation (gray, black,
// white) and therefore excluded from brand-color candidates.
func IsNeutral(hex string) bool {
	return Saturation(hex) < neutralSaturation
}

// FontsFromHTML collects font-family declarations across the page set,
// best-effort, excluding generic families. Families are returned in
// first-seen order, capped at five.
func FontsFromHTML(htmlPages []string) []string {
	var fonts []string
	seen := make(map[string]bool)

	for _, html := range htmlPages {
		for _, match := range fontFamilyPattern.FindAllStringSubmatch(html, -1) {
			for _, family := range strings.Split(match[1], ",") {
				family = strings.Trim(strings.TrimSpace(family), `'"`)
				if family == "" {
					continue
				}
				key := strings.ToLower(family)
				if genericFontFamilies[key] || strings.HasPrefix(key, "var(") || seen[key] {
					continue
				}
				seen[key] = true
				fonts = append(fonts, family)
				break // only the leading family of each declaration
			}
		}
	}

	if len(fonts) > 5 {
		fonts = fonts[:5]
	}
	return fonts
}

func maxOf(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minOf(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
