package language

// Language identifies one of the supported natural languages.
type Language string

// Supported languages.
const (
	English   Language = "en"
	German    Language = "de"
	Ukrainian Language = "uk"
	Russian   Language = "ru"
)

// Order is the fixed enumeration order. It breaks ties in detection and
// makes English the baseline language.
var Order = []Language{English, German, Ukrainian, Russian}

// domainKeywords holds the per-language whole-word keyword lists used by the
// frequency detector. The lists cover the proposal/CRM vocabulary the
// pipeline actually sees; they are static data and never mutated at runtime.
var domainKeywords = map[Language][]string{
	English: {
		"project", "budget", "client", "deadline", "timeline", "deliverable",
		"deliverables", "proposal", "scope", "cost", "price", "company",
		"contact", "email", "phone", "description", "requirements", "features",
		"website", "design", "development", "marketing", "service", "services",
		"estimate", "invoice", "payment", "milestone", "team", "agreement",
	},
	German: {
		"projekt", "kunde", "kunden", "frist", "zeitplan", "lieferung",
		"leistungen", "angebot", "umfang", "kosten", "preis", "firma",
		"unternehmen", "kontakt", "telefon", "beschreibung", "anforderungen",
		"funktionen", "webseite", "gestaltung", "entwicklung", "dienstleistung",
		"rechnung", "zahlung", "aufgabe", "meilenstein", "termin", "auftrag",
		"vertrag", "betrag",
	},
	Ukrainian: {
		"проект", "проекту", "проєкт", "бюджет", "клієнт", "клієнта", "термін",
		"терміни", "завдання", "пропозиція", "обсяг", "вартість", "ціна",
		"компанія", "контакт", "опис", "вимоги", "функції", "сайт", "дизайн",
		"розробка", "послуга", "послуги", "рахунок", "оплата", "етап", "назва",
		"замовник", "угода", "команда",
	},
	Russian: {
		"проект", "проекта", "бюджет", "клиент", "клиента", "срок", "сроки",
		"задача", "предложение", "объем", "стоимость", "цена", "компания",
		"контакт", "описание", "требования", "функции", "сайт", "дизайн",
		"разработка", "услуга", "услуги", "счет", "оплата", "этап", "название",
		"заказчик", "сделка", "команда", "смета",
	},
}

// ukrainianLetters are Cyrillic characters that appear in Ukrainian but not
// in Russian. Their presence strongly biases Cyrillic text toward Ukrainian.
var ukrainianLetters = map[rune]bool{
	'і': true,
	'ї': true,
	'є': true,
	'ґ': true,
}

// germanLetters are Latin-script diacritics that bias toward German.
var germanLetters = map[rune]bool{
	'ä': true,
	'ö': true,
	'ü': true,
	'ß': true,
}
