package usecase

import "sort"

// Static bilingual vocabulary for ingredient normalization. All tables are
// loaded once at package init and never mutated afterwards, so they are safe
// for unsynchronized concurrent reads.

// preparationTerms are preparation/processing words that say how an
// ingredient is handled, not what it is. Matched as whole words in either
// language.
var preparationTerms = map[string]bool{
	// English
	"diced": true, "chopped": true, "minced": true, "sliced": true,
	"grated": true, "peeled": true, "crushed": true, "ground": true,
	"shredded": true, "melted": true, "softened": true, "beaten": true,
	"cooked": true, "boiled": true, "drained": true, "rinsed": true,
	"trimmed": true, "halved": true, "quartered": true, "julienned": true,
	"cubed": true, "mashed": true, "toasted": true, "sifted": true,
	// Spanish
	"picado": true, "picada": true, "picados": true, "picadas": true,
	"cortado": true, "cortada": true, "troceado": true, "troceada": true,
	"rallado": true, "rallada": true, "pelado": true, "pelada": true,
	"molido": true, "molida": true, "machacado": true, "machacada": true,
	"rebanado": true, "rebanada": true, "cocido": true, "cocida": true,
	"batido": true, "batida": true, "derretido": true, "derretida": true,
	"escurrido": true, "escurrida": true, "tamizado": true, "tamizada": true,
}

// quantityTerms are measure/amount words that leak out of recipe text into
// ingredient names ("2 cloves garlic", "un diente de ajo")
var quantityTerms = map[string]bool{
	// English
	"approximately": true, "approx": true, "about": true, "around": true,
	"clove": true, "cloves": true, "pinch": true, "pinches": true,
	"handful": true, "handfuls": true, "dash": true, "splash": true,
	"bunch": true, "bunches": true, "sprig": true, "sprigs": true,
	"stick": true, "sticks": true, "head": true, "heads": true,
	"slice": true, "slices": true, "stalk": true, "stalks": true,
	"some": true, "few": true, "several": true, "half": true,
	// Spanish
	"aproximadamente": true, "aprox": true, "unos": true, "unas": true,
	"diente": true, "dientes": true, "pizca": true, "pizcas": true,
	"puñado": true, "puñados": true, "chorrito": true, "chorro": true,
	"manojo": true, "manojos": true, "ramita": true, "ramitas": true,
	"rama": true, "ramas": true, "cabeza": true, "cabezas": true,
	"rodaja": true, "rodajas": true, "loncha": true, "lonchas": true,
	"tallo": true, "tallos": true, "medio": true, "media": true,
	"algunos": true, "algunas": true, "varios": true, "varias": true,
}

// ingredientStopWords are articles, prepositions and connectors in both
// languages, dropped when extracting key terms
var ingredientStopWords = map[string]bool{
	// English
	"a": true, "an": true, "the": true, "of": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "with": true,
	"and": true, "or": true, "without": true, "from": true,
	// Spanish
	"el": true, "la": true, "los": true, "las": true, "un": true,
	"una": true, "de": true, "del": true, "en": true, "con": true,
	"sin": true, "para": true, "por": true, "al": true, "y": true,
	"o": true, "u": true, "e": true,
}

// ingredientSynonyms maps English ingredient names to their Spanish catalog
// variants. Keys are lowercase cleaned phrases; variants are the spellings
// that actually appear in supermarket listings.
var ingredientSynonyms = map[string][]string{
	// Meat & poultry
	"chicken breast":  {"pechuga de pollo", "pechuga pollo", "filete de pollo"},
	"chicken thigh":   {"muslo de pollo", "contramuslo de pollo"},
	"chicken":         {"pollo", "pollo entero"},
	"ground beef":     {"carne picada", "carne picada de ternera", "carne molida"},
	"beef":            {"ternera", "carne de res", "carne de vacuno"},
	"pork":            {"cerdo", "carne de cerdo", "lomo de cerdo"},
	"pork chop":       {"chuleta de cerdo", "chuletas de cerdo"},
	"lamb":            {"cordero", "carne de cordero"},
	"turkey":          {"pavo", "pechuga de pavo"},
	"ham":             {"jamón", "jamón cocido", "jamón serrano"},
	"bacon":           {"beicon", "bacon", "panceta"},
	"sausage":         {"salchicha", "salchichas", "chorizo"},
	// Fish & seafood
	"salmon":          {"salmón", "filete de salmón"},
	"tuna":            {"atún", "atún en lata", "bonito"},
	"cod":             {"bacalao", "filete de bacalao"},
	"hake":            {"merluza", "filete de merluza"},
	"shrimp":          {"gambas", "camarones", "langostinos"},
	"fish":            {"pescado", "pescado blanco"},
	// Dairy & eggs
	"milk":            {"leche", "leche entera", "leche semidesnatada"},
	"whole milk":      {"leche entera"},
	"butter":          {"mantequilla"},
	"cheese":          {"queso", "queso rallado"},
	"cream cheese":    {"queso crema", "queso de untar"},
	"yogurt":          {"yogur", "yogur natural", "yogurt"},
	"cream":           {"nata", "nata para cocinar", "crema de leche"},
	"egg":             {"huevo", "huevos"},
	"eggs":            {"huevos", "huevos frescos"},
	// Pantry staples
	"rice":            {"arroz", "arroz redondo", "arroz largo"},
	"pasta":           {"pasta", "macarrones", "espaguetis"},
	"spaghetti":       {"espaguetis", "spaghetti"},
	"bread":           {"pan", "pan de molde", "barra de pan"},
	"flour":           {"harina", "harina de trigo"},
	"sugar":           {"azúcar", "azúcar blanco"},
	"brown sugar":     {"azúcar moreno"},
	"salt":            {"sal", "sal fina", "sal marina"},
	"black pepper":    {"pimienta negra", "pimienta negra molida"},
	"olive oil":       {"aceite de oliva", "aceite de oliva virgen extra", "aceite oliva"},
	"sunflower oil":   {"aceite de girasol"},
	"vinegar":         {"vinagre", "vinagre de vino"},
	"honey":           {"miel"},
	"oats":            {"avena", "copos de avena"},
	"breadcrumbs":     {"pan rallado"},
	"noodles":         {"fideos", "noodles"},
	"chickpeas":       {"garbanzos", "garbanzos cocidos"},
	"lentils":         {"lentejas", "lentejas cocidas"},
	"beans":           {"judías", "alubias", "frijoles"},
	"tomato sauce":    {"tomate frito", "salsa de tomate"},
	// Vegetables
	"garlic":          {"ajo", "ajos", "cabeza de ajo"},
	"onion":           {"cebolla", "cebollas"},
	"tomato":          {"tomate", "tomates", "tomate pera"},
	"potato":          {"patata", "patatas", "papa"},
	"carrot":          {"zanahoria", "zanahorias"},
	"lettuce":         {"lechuga", "lechuga iceberg"},
	"spinach":         {"espinacas", "espinaca"},
	"broccoli":        {"brócoli", "brecol"},
	"cucumber":        {"pepino", "pepinos"},
	"zucchini":        {"calabacín", "calabacines"},
	"bell pepper":     {"pimiento", "pimiento rojo", "pimiento verde"},
	"pepper":          {"pimiento", "pimienta"},
	"mushroom":        {"champiñón", "champiñones", "setas"},
	"corn":            {"maíz", "maíz dulce"},
	"celery":          {"apio"},
	"leek":            {"puerro", "puerros"},
	"eggplant":        {"berenjena", "berenjenas"},
	"pumpkin":         {"calabaza"},
	"cauliflower":     {"coliflor"},
	"green beans":     {"judías verdes"},
	"peas":            {"guisantes"},
	// Fruit
	"apple":           {"manzana", "manzanas"},
	"banana":          {"plátano", "plátanos", "banana"},
	"orange":          {"naranja", "naranjas"},
	"lemon":           {"limón", "limones"},
	"lime":            {"lima", "limas"},
	"strawberry":      {"fresa", "fresas"},
	"grape":           {"uva", "uvas"},
	"peach":           {"melocotón", "melocotones"},
	"pear":            {"pera", "peras"},
	"watermelon":      {"sandía"},
	"melon":           {"melón"},
	"pineapple":       {"piña"},
	"avocado":         {"aguacate", "aguacates"},
	"kiwi":            {"kiwi", "kiwis"},
	// Herbs & spices
	"parsley":         {"perejil"},
	"cilantro":        {"cilantro"},
	"coriander":       {"cilantro", "coriandro"},
	"basil":           {"albahaca"},
	"oregano":         {"orégano"},
	"thyme":           {"tomillo"},
	"rosemary":        {"romero"},
	"cinnamon":        {"canela", "canela molida"},
	"paprika":         {"pimentón", "pimentón dulce"},
	"saffron":         {"azafrán"},
	"bay leaf":        {"laurel", "hoja de laurel"},
	"ginger":          {"jengibre"},
	"nutmeg":          {"nuez moscada"},
	"cumin":           {"comino"},
	// Beverages & misc
	"water":           {"agua", "agua mineral"},
	"coffee":          {"café", "café molido"},
	"tea":             {"té", "té verde"},
	"wine":            {"vino", "vino blanco", "vino tinto"},
	"white wine":      {"vino blanco"},
	"red wine":        {"vino tinto"},
	"beer":            {"cerveza"},
	"chocolate":       {"chocolate", "chocolate negro"},
	"juice":           {"zumo", "jugo", "zumo de naranja"},
	"broth":           {"caldo", "caldo de pollo"},
	"chicken broth":   {"caldo de pollo"},
	"vegetable broth": {"caldo de verduras"},
	"almonds":         {"almendras"},
	"walnuts":         {"nueces"},
	"peanuts":         {"cacahuetes"},
	"raisins":         {"pasas"},
	"olives":          {"aceitunas", "olivas"},
}

// synonymKeys is a sorted snapshot of the synonym table keys so the
// containment fallback scans them in a stable order
var synonymKeys = sortedSynonymKeys()

func sortedSynonymKeys() []string {
	keys := make([]string, 0, len(ingredientSynonyms))
	for k := range ingredientSynonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
