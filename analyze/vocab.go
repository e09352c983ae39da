package analyze

// Fixed term lists used by the heuristic analyzer. Each list carries one
// confidence value: recognizing a platform name is close to certain, while
// property nouns are the most ambiguous.
const (
	componentConfidence float32 = 0.8
	platformConfidence  float32 = 0.9
	propertyConfidence  float32 = 0.7
)

// componentTerms maps recognized component phrases to their normalized value.
var componentTerms = map[string]string{
	"button":              "button",
	"buttons":             "button",
	"navigation bar":      "navigation bar",
	"navigation bars":     "navigation bar",
	"nav bar":             "navigation bar",
	"tab bar":             "tab bar",
	"tab bars":            "tab bar",
	"toolbar":             "toolbar",
	"toolbars":            "toolbar",
	"slider":              "slider",
	"sliders":             "slider",
	"toggle":              "toggle",
	"toggles":             "toggle",
	"switch":              "toggle",
	"switches":            "toggle",
	"picker":              "picker",
	"pickers":             "picker",
	"menu":                "menu",
	"menus":               "menu",
	"alert":               "alert",
	"alerts":              "alert",
	"sheet":               "sheet",
	"sheets":              "sheet",
	"popover":             "popover",
	"popovers":            "popover",
	"text field":          "text field",
	"text fields":         "text field",
	"search field":        "search field",
	"segmented control":   "segmented control",
	"segmented controls":  "segmented control",
	"stepper":             "stepper",
	"steppers":            "stepper",
	"progress indicator":  "progress indicator",
	"progress indicators": "progress indicator",
	"activity indicator":  "progress indicator",
	"sidebar":             "sidebar",
	"sidebars":            "sidebar",
	"list":                "list",
	"lists":               "list",
	"table":               "table",
	"tables":              "table",
	"label":               "label",
	"labels":              "label",
	"icon":                "icon",
	"icons":               "icon",
	"window":              "window",
	"windows":             "window",
	"badge":               "badge",
	"badges":              "badge",
}

// platformTerms maps recognized platform phrases to the canonical platform name.
var platformTerms = map[string]string{
	"ios":         "iOS",
	"iphone":      "iOS",
	"ipad":        "iOS",
	"macos":       "macOS",
	"mac":         "macOS",
	"watchos":     "watchOS",
	"apple watch": "watchOS",
	"tvos":        "tvOS",
	"apple tv":    "tvOS",
	"visionos":    "visionOS",
	"vision pro":  "visionOS",
}

// propertyTerms maps recognized property phrases to their normalized value.
var propertyTerms = map[string]string{
	"color":         "color",
	"colors":        "color",
	"size":          "size",
	"sizes":         "size",
	"spacing":       "spacing",
	"padding":       "padding",
	"margin":        "margin",
	"margins":       "margin",
	"typography":    "typography",
	"font":          "font",
	"fonts":         "font",
	"contrast":      "contrast",
	"corner radius": "corner radius",
	"opacity":       "opacity",
	"animation":     "animation",
	"animations":    "animation",
	"alignment":     "alignment",
	"height":        "height",
	"width":         "width",
}

// conceptVocabulary is the fixed set of normalized topic labels shared with
// the cross-reference mapper.
var conceptVocabulary = []string{
	"accessibility",
	"usability",
	"navigation",
	"consistency",
	"feedback",
	"hierarchy",
	"clarity",
	"legibility",
	"discoverability",
	"affordance",
	"layout",
	"gesture",
	"animation",
	"localization",
	"privacy",
	"onboarding",
}
