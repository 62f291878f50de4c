package upn

import "golang.org/x/text/language"

// Labels holds the captions of the human-readable slip description.
type Labels struct {
	Receiver  string
	IBAN      string
	Purpose   string
	Reference string
	Amount    string
	DueDate   string
}

type localeDefaults struct {
	purposeTemplate string
	labels          Labels
}

// The first tag is the fallback.
var supportedLocales = []language.Tag{language.English, language.Slovenian}

var localeMatcher = language.NewMatcher(supportedLocales)

var defaultsByLocale = map[language.Tag]localeDefaults{
	language.English: {
		purposeTemplate: DefaultPurposeTemplate,
		labels: Labels{
			Receiver:  "Receiver name, street and city",
			IBAN:      "Receiver IBAN",
			Purpose:   "Payment purpose",
			Reference: "Receiver reference",
			Amount:    "Amount",
			DueDate:   "Due date",
		},
	},
	language.Slovenian: {
		purposeTemplate: "Plačilo naročila " + Placeholder,
		labels: Labels{
			Receiver:  "Ime, ulica in kraj prejemnika",
			IBAN:      "IBAN prejemnika",
			Purpose:   "Namen plačila",
			Reference: "Referenca prejemnika",
			Amount:    "Znesek",
			DueDate:   "Rok plačila",
		},
	},
}

func matchLocale(locale string) localeDefaults {
	_, idx := language.MatchStrings(localeMatcher, locale)
	return defaultsByLocale[supportedLocales[idx]]
}

// LocaleDefaults returns the builder defaults for a BCP 47 locale such as
// "sl-SI". Unknown locales get the English defaults.
func LocaleDefaults(locale string) Overrides {
	return Overrides{
		PurposeCode:       DefaultPurposeCode,
		ReferenceTemplate: DefaultReferenceTemplate,
		PurposeTemplate:   matchLocale(locale).purposeTemplate,
	}
}

// LabelsFor returns the description captions for locale.
func LabelsFor(locale string) Labels {
	return matchLocale(locale).labels
}

// Row is one captioned entry of the slip description table.
type Row struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}

// Describe returns the receiver, IBAN, purpose and reference rows shown next
// to the slip image.
func Describe(slip PaymentSlip, locale string) []Row {
	l := LabelsFor(locale)
	return []Row{
		{Label: l.Receiver, Lines: []string{slip.Receiver.Name, slip.Receiver.Address, slip.Receiver.Post}},
		{Label: l.IBAN, Lines: []string{slip.Receiver.IBAN}},
		{Label: l.Purpose, Lines: []string{slip.Purpose}},
		{Label: l.Reference, Lines: []string{slip.Reference}},
	}
}
