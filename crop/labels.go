package crop

type Label string

const (
	Rice        Label = "rice"
	Maize       Label = "maize"
	Chickpea    Label = "chickpea"
	KidneyBeans Label = "kidneybeans"
	PigeonPeas  Label = "pigeonpeas"
	MothBeans   Label = "mothbeans"
	MungBean    Label = "mungbean"
	BlackGram   Label = "blackgram"
	Lentil      Label = "lentil"
	Pomegranate Label = "pomegranate"
	Banana      Label = "banana"
	Mango       Label = "mango"
	Grapes      Label = "grapes"
	Watermelon  Label = "watermelon"
	Muskmelon   Label = "muskmelon"
	Apple       Label = "apple"
	Orange      Label = "orange"
	Papaya      Label = "papaya"
	Coconut     Label = "coconut"
	Cotton      Label = "cotton"
	Jute        Label = "jute"
	Coffee      Label = "coffee"
)

var labels = []Label{
	Rice,
	Maize,
	Chickpea,
	KidneyBeans,
	PigeonPeas,
	MothBeans,
	MungBean,
	BlackGram,
	Lentil,
	Pomegranate,
	Banana,
	Mango,
	Grapes,
	Watermelon,
	Muskmelon,
	Apple,
	Orange,
	Papaya,
	Coconut,
	Cotton,
	Jute,
	Coffee,
}

// Labels returns the closed set of crop identifiers.
func Labels() []Label {
	return append([]Label(nil), labels...)
}

func ParseLabel(s string) (Label, bool) {
	for _, label := range labels {
		if string(label) == s {
			return label, true
		}
	}
	return "", false
}

func (l Label) String() string {
	return string(l)
}
