package config

// defaultRegions lists the Indian states and union territories a submission
// may be tagged with. Overridable via the REGIONS env var.
var defaultRegions = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// defaultLanguages maps language codes to display names shown in the wizard.
var defaultLanguages = map[string]string{
	"hi": "हिंदी (Hindi)",
	"bn": "বাংলা (Bengali)",
	"ta": "தமிழ் (Tamil)",
	"te": "తెలుగు (Telugu)",
	"mr": "मराठी (Marathi)",
	"gu": "ગુજરાતી (Gujarati)",
	"kn": "ಕನ್ನಡ (Kannada)",
	"ml": "മലയാളം (Malayalam)",
	"or": "ଓଡ଼ିଆ (Odia)",
	"pa": "ਪੰਜਾਬੀ (Punjabi)",
	"as": "অসমীয়া (Assamese)",
	"ur": "اردو (Urdu)",
	"en": "English",
}

// AllowedExtensions maps a content type to the file extensions accepted for it.
// Text submissions may carry an attached document.
var AllowedExtensions = map[string][]string{
	"Image": {".jpg", ".jpeg", ".png", ".gif", ".bmp"},
	"Audio": {".mp3", ".wav", ".m4a", ".flac", ".ogg"},
	"Video": {".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm"},
	"Text":  {".txt", ".pdf", ".doc", ".docx"},
}
