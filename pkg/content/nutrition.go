package content

import (
	"math"
	"strconv"
	"strings"
)

// NutritionRow is one line of the nutrition facts table, per 100 g.
type NutritionRow struct {
	Nutrient   string
	Unit       string
	Per100     float64
	DailyValue string
}

// Amount formats the per-100g value the way Brazilian labels print it.
func (r NutritionRow) Amount() string {
	return FormatNumber(r.Per100) + " " + r.Unit
}

// NutritionTable is the sunflower microgreens label.
var NutritionTable = []NutritionRow{
	{"Valor Energético", "kcal", 27, "1%"},
	{"Carboidratos", "g", 2.4, "1%"},
	{"Proteínas", "g", 4.0, "5%"},
	{"Gorduras Totais", "g", 0.8, "1%"},
	{"Fibras", "g", 2.1, "8%"},
	{"Vitamina E", "mg", 2.9, "19%"},
	{"Vitamina C", "mg", 22, "24%"},
	{"Ferro", "mg", 1.8, "13%"},
	{"Zinco", "mg", 0.9, "9%"},
	{"Folato", "µg", 80, "20%"},
}

// LettuceComparison is one nutrient compared between sunflower microgreens
// and lettuce.
type LettuceComparison struct {
	Label     string
	Sunflower float64
	Lettuce   float64
	Unit      string
}

// Ratio is sunflower over lettuce rounded to one decimal.
func (c LettuceComparison) Ratio() float64 {
	if c.Lettuce == 0 {
		return 0
	}
	return math.Round(c.Sunflower/c.Lettuce*10) / 10
}

// BarFractions returns both bar lengths as fractions of a track that is
// 15% longer than the larger value.
func (c LettuceComparison) BarFractions() (sunflower, lettuce float64) {
	top := math.Max(c.Sunflower, c.Lettuce) * 1.15
	if top <= 0 {
		return 0, 0
	}
	return c.Sunflower / top, c.Lettuce / top
}

// Comparisons drives the bar chart on the nutrition panel.
var Comparisons = []LettuceComparison{
	{"Proteínas", 4.0, 1.4, "g"},
	{"Vitamina E", 2.9, 0.3, "mg"},
	{"Vitamina C", 22, 9, "mg"},
	{"Ferro", 1.8, 0.9, "mg"},
	{"Folato", 80, 38, "µg"},
	{"Zinco", 0.9, 0.2, "mg"},
}

// KeyStat is a highlighted number with a caption.
type KeyStat struct {
	Stat string
	Desc string
}

// KeyStats are shown under the comparison chart.
var KeyStats = []KeyStat{
	{"40×", "mais nutrientes"},
	{"2.8×", "mais proteínas"},
	{"9×", "mais vit. E"},
}

// StorageNotes run along the bottom of the nutrition panel.
var StorageNotes = []string{
	"Conservar refrigerado entre 2°C e 8°C",
	"Produto fresco · Consumir em até 5 dias",
	"Val.: Ver embalagem",
}

// FormatNumber prints v with at most one decimal and no trailing zero,
// matching how the label shows 27, 2.4 and 4.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
