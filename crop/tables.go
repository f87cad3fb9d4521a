package crop

var infoTable = map[Label]Info{
	Rice: {
		Name:        "Rice",
		Description: "Rice is a staple food crop that requires high water and humidity. Best grown in flooded fields.",
		Season:      "Kharif (June-November)",
		SoilType:    "Clay or loamy soil",
		Tips:        "Ensure proper water management, use quality seeds, and monitor for pests regularly.",
	},
	Maize: {
		Name:        "Maize (Corn)",
		Description: "Maize is a cereal grain that thrives in warm conditions with moderate rainfall.",
		Season:      "Kharif and Rabi",
		SoilType:    "Well-drained loamy soil",
		Tips:        "Maintain proper spacing, apply nitrogen-rich fertilizers, and protect from birds.",
	},
	Chickpea: {
		Name:        "Chickpea",
		Description: "Chickpea is a protein-rich legume crop suitable for dry regions.",
		Season:      "Rabi (October-March)",
		SoilType:    "Well-drained loamy soil",
		Tips:        "Avoid waterlogging, use proper seed treatment, and rotate crops for better yield.",
	},
	KidneyBeans: {
		Name:        "Kidney Beans",
		Description: "Kidney beans are nutritious legumes that prefer warm climates.",
		Season:      "Kharif",
		SoilType:    "Well-drained fertile soil",
		Tips:        "Provide support for climbing varieties and ensure adequate nitrogen.",
	},
	PigeonPeas: {
		Name:        "Pigeon Peas",
		Description: "Pigeon peas are drought-resistant legumes suitable for semi-arid regions.",
		Season:      "Kharif",
		SoilType:    "Various soil types",
		Tips:        "Requires less water, good for intercropping, and fixes nitrogen in soil.",
	},
	MothBeans: {
		Name:        "Moth Beans",
		Description: "Moth beans are drought-resistant and suitable for arid regions.",
		Season:      "Kharif",
		SoilType:    "Sandy loam",
		Tips:        "Very drought tolerant, requires minimal water and fertilizer.",
	},
	MungBean: {
		Name:        "Mung Bean",
		Description: "Mung beans are fast-growing legumes rich in protein.",
		Season:      "Kharif and Summer",
		SoilType:    "Loamy soil",
		Tips:        "Short duration crop, good for rotation, and improves soil fertility.",
	},
	BlackGram: {
		Name:        "Black Gram",
		Description: "Black gram is a pulse crop suitable for various climatic conditions.",
		Season:      "Kharif and Rabi",
		SoilType:    "Loamy soil",
		Tips:        "Use certified seeds, maintain proper drainage, and control pests.",
	},
	Lentil: {
		Name:        "Lentil",
		Description: "Lentils are cool-season legumes rich in protein.",
		Season:      "Rabi",
		SoilType:    "Well-drained loamy soil",
		Tips:        "Avoid waterlogging, use recommended varieties, and harvest at proper maturity.",
	},
	Pomegranate: {
		Name:        "Pomegranate",
		Description: "Pomegranate is a fruit crop suitable for semi-arid regions.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained soil",
		Tips:        "Requires pruning, proper irrigation, and protection from fruit cracking.",
	},
	Banana: {
		Name:        "Banana",
		Description: "Banana is a tropical fruit requiring high moisture and warmth.",
		Season:      "Year-round (perennial)",
		SoilType:    "Rich loamy soil",
		Tips:        "Ensure regular watering, mulching, and protection from strong winds.",
	},
	Mango: {
		Name:        "Mango",
		Description: "Mango is the king of fruits, requiring tropical to subtropical climate.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained deep soil",
		Tips:        "Prune regularly, manage flowering, and control pests and diseases.",
	},
	Grapes: {
		Name:        "Grapes",
		Description: "Grapes are vine fruits suitable for warm and dry climates.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained sandy loam",
		Tips:        "Requires trellising, regular pruning, and disease management.",
	},
	Watermelon: {
		Name:        "Watermelon",
		Description: "Watermelon is a summer fruit requiring warm weather and good moisture.",
		Season:      "Summer",
		SoilType:    "Sandy loam",
		Tips:        "Provide adequate spacing, mulch well, and ensure consistent watering.",
	},
	Muskmelon: {
		Name:        "Muskmelon",
		Description: "Muskmelon is a sweet summer fruit requiring warm conditions.",
		Season:      "Summer",
		SoilType:    "Sandy loam",
		Tips:        "Maintain proper vine spacing, mulching, and protect from fruit flies.",
	},
	Apple: {
		Name:        "Apple",
		Description: "Apples require temperate climate with cold winters.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained loamy soil",
		Tips:        "Requires chilling hours, proper pruning, and pest management.",
	},
	Orange: {
		Name:        "Orange",
		Description: "Oranges are citrus fruits requiring warm subtropical climate.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained loamy soil",
		Tips:        "Regular watering, fertilization, and disease control are essential.",
	},
	Papaya: {
		Name:        "Papaya",
		Description: "Papaya is a tropical fruit requiring warmth and good drainage.",
		Season:      "Year-round",
		SoilType:    "Well-drained rich soil",
		Tips:        "Ensure good drainage, regular feeding, and remove male plants.",
	},
	Coconut: {
		Name:        "Coconut",
		Description: "Coconut palms thrive in coastal tropical regions.",
		Season:      "Year-round (perennial)",
		SoilType:    "Sandy coastal soil",
		Tips:        "Requires regular watering in dry seasons and proper nutrient management.",
	},
	Cotton: {
		Name:        "Cotton",
		Description: "Cotton is a fiber crop requiring warm weather and moderate rainfall.",
		Season:      "Kharif",
		SoilType:    "Black cotton soil",
		Tips:        "Control bollworms, ensure proper spacing, and timely harvesting.",
	},
	Jute: {
		Name:        "Jute",
		Description: "Jute is a fiber crop requiring high humidity and rainfall.",
		Season:      "Kharif",
		SoilType:    "Alluvial soil",
		Tips:        "Requires waterlogged conditions, harvest at proper stage for quality fiber.",
	},
	Coffee: {
		Name:        "Coffee",
		Description: "Coffee requires tropical highland climate with good rainfall.",
		Season:      "Year-round (perennial)",
		SoilType:    "Well-drained rich soil",
		Tips:        "Provide shade, maintain proper moisture, and control pests and diseases.",
	},
}

var displayNames = map[Label]map[string]string{
	Rice: {
		"en": "Rice", "hi": "धान", "te": "వరి", "ta": "அரிசி", "ml": "നെല്ല്", "kn": "ಅಕ್ಕಿ", "mr": "तांदूळ", "bn": "ধান", "gu": "ચોખા", "pa": "ਚੌਲ",
	},
	Maize: {
		"en": "Maize", "hi": "मक्का", "te": "మొక్కజొన్న", "ta": "சோளம்", "ml": "ചോളം", "kn": "ಮೆಕ್ಕೆ ಜೋಳ", "mr": "मका", "bn": "ভুট্টা", "gu": "મકાઈ", "pa": "ਮੱਕੀ",
	},
	Chickpea: {
		"en": "Chickpea", "hi": "चना", "te": "శనగలు", "ta": "கொண்டைக்கடலை", "ml": "കടല", "kn": "ಕಡಲೆ", "mr": "हरभरा", "bn": "ছোলা", "gu": "ચણા", "pa": "ਛੋਲੇ",
	},
	KidneyBeans: {
		"en": "Kidney Beans", "hi": "राजमा", "te": "రాజ్మా", "ta": "ராஜ்மா", "ml": "രാജ്മ", "kn": "ರಾಜ್ಮಾ", "mr": "राजमा", "bn": "রাজমা", "gu": "રાજમા", "pa": "ਰਾਜਮਾਂ",
	},
	PigeonPeas: {
		"en": "Pigeon Peas", "hi": "अरहर", "te": "కందులు", "ta": "துவரை", "ml": "തുവര", "kn": "ತೊಗರಿ ಬೇಳೆ", "mr": "तूर", "bn": "অড়হর", "gu": "અરહર", "pa": "ਅਰਹਰ",
	},
	MothBeans: {
		"en": "Moth Beans", "hi": "मोठ", "te": "మినుములు", "ta": "மொச்சை", "ml": "മോത്ത്", "kn": "ಹೆಸರುಕಾಳು", "mr": "मटकी", "bn": "মথ", "gu": "મઠ", "pa": "ਮੋਠ",
	},
	MungBean: {
		"en": "Mung Bean", "hi": "मूंग", "te": "పెసలు", "ta": "பயறு", "ml": "ചെറുപയർ", "kn": "ಹೆಸರು", "mr": "मूग", "bn": "মুগ", "gu": "મગ", "pa": "ਮੂੰਗ",
	},
	BlackGram: {
		"en": "Black Gram", "hi": "उड़द", "te": "మినుములు", "ta": "உளுந்து", "ml": "ഉഴുന്ന്", "kn": "ಉದ್ದು", "mr": "उडीद", "bn": "মাষকলাই", "gu": "અડદ", "pa": "ਮਾਂਹ",
	},
	Lentil: {
		"en": "Lentil", "hi": "मसूर", "te": "మసూర్", "ta": "மசூர்", "ml": "മസൂർ", "kn": "ಮಸೂರ", "mr": "मसूर", "bn": "মসুর", "gu": "મસૂર", "pa": "ਮਸੂਰ",
	},
	Pomegranate: {
		"en": "Pomegranate", "hi": "अनार", "te": "దానిమ్మ", "ta": "மாதுளை", "ml": "മാതളനാരകം", "kn": "ದಾಳಿಂಬೆ", "mr": "डाळिंब", "bn": "ডালিম", "gu": "દાડમ", "pa": "ਅਨਾਰ",
	},
	Banana: {
		"en": "Banana", "hi": "केला", "te": "అరటి", "ta": "வாழை", "ml": "വാഴപ്പഴം", "kn": "ಬಾಳೆ", "mr": "केळी", "bn": "কলা", "gu": "કેળા", "pa": "ਕੇਲਾ",
	},
	Mango: {
		"en": "Mango", "hi": "आम", "te": "మామిడి", "ta": "மாம்பழம்", "ml": "മാങ്ങ", "kn": "ಮಾವಿನ ಹಣ್ಣು", "mr": "आंबा", "bn": "আম", "gu": "કેરી", "pa": "ਅੰਬ",
	},
	Grapes: {
		"en": "Grapes", "hi": "अंगूर", "te": "ద్రాక్ష", "ta": "திராட்சை", "ml": "മുന്തിരി", "kn": "ದ್ರಾಕ್ಷಿ", "mr": "द्राक्षे", "bn": "আঙ্গুর", "gu": "દ્રાક્ષ", "pa": "ਅੰਗੂਰ",
	},
	Watermelon: {
		"en": "Watermelon", "hi": "तरबूज", "te": "పుచ్చకాయ", "ta": "தர்பூசணி", "ml": "തണ്ണിമത്തൻ", "kn": "ಕಲ್ಲಂಗಡಿ", "mr": "टरबूज", "bn": "তরমুজ", "gu": "તરબૂચ", "pa": "ਤਰਬੂਜ",
	},
	Muskmelon: {
		"en": "Muskmelon", "hi": "खरबूजा", "te": "ఖర్బూజా", "ta": "முலாம்பழம்", "ml": "മധുരപ്പഴം", "kn": "ಖರ್ಬೂಜ", "mr": "खरबूज", "bn": "ফুটি", "gu": "ખરબૂચ", "pa": "ਖਰਬੂਜਾ",
	},
	Apple: {
		"en": "Apple", "hi": "सेब", "te": "ఆపిల్", "ta": "ஆப்பிள்", "ml": "ആപ്പിൾ", "kn": "ಸೇಬು", "mr": "सफरचंद", "bn": "আপেল", "gu": "સફરજન", "pa": "ਸੇਬ",
	},
	Orange: {
		"en": "Orange", "hi": "संतरा", "te": "నారింజ", "ta": "ஆரஞ்சு", "ml": "ഓറഞ്ച്", "kn": "ಕಿತ್ತಳೆ", "mr": "संत्रा", "bn": "কমলা", "gu": "નારંગી", "pa": "ਸੰਤਰਾ",
	},
	Papaya: {
		"en": "Papaya", "hi": "पपीता", "te": "బొప్పాయి", "ta": "பப்பாளி", "ml": "പപ്പായ", "kn": "ಪಪ್ಪಾಯಿ", "mr": "पपई", "bn": "পেঁপে", "gu": "પપૈયા", "pa": "ਪਪੀਤਾ",
	},
	Coconut: {
		"en": "Coconut", "hi": "नारियल", "te": "కొబ్బరి", "ta": "தேங்காய்", "ml": "തേങ്ങ", "kn": "ತೆಂಗು", "mr": "नारळ", "bn": "নারকেল", "gu": "નાળિયેર", "pa": "ਨਾਰੀਅਲ",
	},
	Cotton: {
		"en": "Cotton", "hi": "कपास", "te": "పత్తి", "ta": "பருத்தி", "ml": "പഞ്ഞി", "kn": "ಹತ್ತಿ", "mr": "कापूस", "bn": "তুলা", "gu": "કપાસ", "pa": "ਕਪਾਹ",
	},
	Jute: {
		"en": "Jute", "hi": "जूट", "te": "జనపనార", "ta": "சணல்", "ml": "ചണം", "kn": "ಸೆಣಬು", "mr": "तांबूस", "bn": "পাট", "gu": "શણ", "pa": "ਜੂਟ",
	},
	Coffee: {
		"en": "Coffee", "hi": "कॉफी", "te": "కాఫీ", "ta": "காபி", "ml": "കാപ്പി", "kn": "ಕಾಫಿ", "mr": "कॉफी", "bn": "কফি", "gu": "કોફી", "pa": "ਕੌਫੀ",
	},
}

var supportedLanguages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"te": "Telugu",
	"ta": "Tamil",
	"ml": "Malayalam",
	"kn": "Kannada",
	"mr": "Marathi",
	"bn": "Bengali",
	"gu": "Gujarati",
	"pa": "Punjabi",
}
