package predictor

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"innerparts/internal/model"
)

// FeatureVector is an ordered name → value mapping. Order is the
// derivation order; the scoring adapter realigns it to the artifact's
// column list, so only the values matter downstream.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

// NewFeatureVector returns an empty vector.
func NewFeatureVector() *FeatureVector {
	return &FeatureVector{values: make(map[string]float64)}
}

// Set stores a value, appending the name on first write.
func (v *FeatureVector) Set(name string, value float64) {
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Get returns the value for name, or 0 when the feature was never derived.
func (v *FeatureVector) Get(name string) float64 {
	return v.values[name]
}

// Names returns the feature names in derivation order.
func (v *FeatureVector) Names() []string {
	return v.names
}

// Len returns the number of derived features.
func (v *FeatureVector) Len() int {
	return len(v.names)
}

// sliderMidpoints maps a percentage bucket to its representative value.
var sliderMidpoints = map[string]float64{
	"0-20%":   0.10,
	"21-50%":  0.35,
	"51-80%":  0.65,
	"81-100%": 0.90,
}

const sliderDefault = 0.5

// keyOptions enumerates the (question, option-code) pairs that become
// binary presence indicators. Codes not listed here never get a column
// and read as 0 wherever later formulas reference them.
var keyOptions = []struct {
	question string
	codes    []string
}{
	{"Q1", []string{"0", "2", "3", "5"}},
	{"Q3", []string{"0", "1", "2", "3", "4"}},
	{"Q5", []string{"0", "1", "2", "3", "4", "5"}},
	{"Q7", []string{"0", "1", "3", "4", "5"}},
	{"Q10", []string{"0", "1", "2", "3", "4"}},
	{"Q11", []string{"0", "1", "2", "3", "4", "5"}},
	{"Q12", []string{"0", "1", "2", "3", "4", "5"}},
	{"Q13", []string{"0", "1", "2", "4", "5", "7"}},
}

// DeriveFeatures turns raw answers into the numeric feature vector. It is
// a pure function of the answer map and never fails: absent or malformed
// answers degrade to neutral defaults instead of aborting.
func DeriveFeatures(answers model.Answers) *FeatureVector {
	v := NewFeatureVector()

	// 1. Slider buckets to numeric midpoints, 0.5 when unknown or missing.
	for _, q := range model.SliderQuestions {
		value := sliderDefault
		if mid, ok := sliderMidpoints[answers[q]]; ok {
			value = mid
		}
		v.Set(q+"_num", value)
	}

	// 2. Selection counts for the multi-select questions.
	for _, q := range model.MultiSelectQuestions {
		count := 0.0
		if raw, ok := answers[q]; ok {
			count = float64(len(strings.Split(raw, ",")))
		}
		v.Set(q+"_count", count)
	}

	// 3. Option-presence indicators. Tokens are matched verbatim, without
	// trimming, the same way the trainer derived them.
	for _, entry := range keyOptions {
		tokens := strings.Split(answers[entry.question], ",")
		for _, code := range entry.codes {
			v.Set(entry.question+"_opt_"+code, b2f(containsToken(tokens, code)))
		}
	}

	// 4. Pattern clarity conjunctions: one slider threshold and two
	// specific option picks each.
	v.Set("clear_perfectionist", b2f(v.Get("Q2_num") > 0.8 && v.Get("Q1_opt_0") == 1 && v.Get("Q3_opt_0") == 1))
	v.Set("clear_people_pleaser", b2f(v.Get("Q1_opt_2") == 1 && v.Get("Q10_opt_0") == 1 && v.Get("Q7_opt_3") == 1))
	v.Set("clear_procrastinator", b2f(v.Get("Q8_num") > 0.8 && v.Get("Q1_opt_3") == 1 && v.Get("Q7_opt_4") == 1))
	v.Set("clear_lonely", b2f(v.Get("Q4_num") > 0.8 && v.Get("Q11_opt_1") == 1 && v.Get("Q12_opt_3") == 1))
	v.Set("clear_inner_critic", b2f(v.Get("Q3_opt_3") == 1 && v.Get("Q11_opt_0") == 1 && v.Get("Q7_opt_5") == 1))

	// 5. Weighted psychological dimension scores. Weights sum to 1.0 per
	// score and must not be retuned without retraining the model.
	v.Set("perfectionism_score",
		v.Get("Q2_num")*0.4+v.Get("Q1_opt_0")*0.3+v.Get("Q3_opt_0")*0.3)
	v.Set("loneliness_score",
		v.Get("Q4_num")*0.5+v.Get("Q11_opt_1")*0.3+v.Get("Q12_opt_3")*0.2)
	v.Set("escapism_score",
		v.Get("Q8_num")*0.5+v.Get("Q1_opt_3")*0.2+v.Get("Q7_opt_4")*0.2+v.Get("Q7_opt_1")*0.1)
	v.Set("self_criticism_score",
		v.Get("Q11_opt_0")*0.4+v.Get("Q7_opt_5")*0.3+v.Get("Q3_opt_3")*0.3)
	v.Set("social_focus_score",
		v.Get("Q1_opt_2")*0.4+v.Get("Q10_opt_0")*0.3+v.Get("Q7_opt_3")*0.3)
	v.Set("control_score",
		v.Get("Q1_opt_0")*0.4+v.Get("Q7_opt_0")*0.3+v.Get("Q10_opt_1")*0.3)
	v.Set("vulnerability_score",
		v.Get("Q3_opt_2")*0.3+v.Get("Q6_opt_1")*0.3+v.Get("Q9_opt_4")*0.2+v.Get("Q13_opt_0")*0.2)

	// 6. Pattern aggregate metrics.
	clearCount := v.Get("clear_perfectionist") + v.Get("clear_people_pleaser") +
		v.Get("clear_procrastinator") + v.Get("clear_lonely") + v.Get("clear_inner_critic")
	v.Set("clear_pattern_count", clearCount)
	v.Set("has_clear_pattern", b2f(clearCount > 0))
	v.Set("has_multiple_clear", b2f(clearCount > 1))

	// 7. Response consistency across sliders and selection counts.
	var sliderValues, countValues []float64
	for _, q := range model.SliderQuestions {
		sliderValues = append(sliderValues, v.Get(q+"_num"))
	}
	for _, q := range model.MultiSelectQuestions {
		countValues = append(countValues, v.Get(q+"_count"))
	}
	v.Set("slider_consistency", 1-sampleStdev(sliderValues))
	v.Set("selection_consistency", 1-sampleStdev(countValues)/3)

	// 8. Archetype dominance. The 0.5 fallback when no indicator fires is
	// a neutral reading, not an error.
	manager := v.Get("clear_perfectionist") + v.Get("clear_people_pleaser") +
		v.Get("clear_inner_critic") + v.Get("Q1_opt_0")
	firefighter := v.Get("clear_procrastinator") + b2f(v.Get("Q8_num") > 0.7)
	exile := v.Get("clear_lonely") + b2f(v.Get("Q4_num") > 0.7)

	clarity := 0.5
	if total := manager + firefighter + exile; total > 0 {
		clarity = math.Max(manager, math.Max(firefighter, exile)) / total
	}
	v.Set("archetype_clarity", clarity)

	// 9. Ambiguity counts both "no clear pattern" and "several clear
	// patterns" as evidence, alongside inconsistent responding.
	v.Set("total_ambiguity",
		b2f(clearCount == 0)*0.3+
			v.Get("has_multiple_clear")*0.3+
			b2f(v.Get("slider_consistency") < 0.7)*0.2+
			b2f(v.Get("selection_consistency") < 0.6)*0.2)

	// 10. Psychological tension interactions.
	v.Set("perfection_vs_procrastination", v.Get("perfectionism_score")*v.Get("escapism_score"))
	v.Set("control_vs_vulnerability", v.Get("control_score")*v.Get("vulnerability_score"))
	v.Set("inner_conflict_score",
		v.Get("perfection_vs_procrastination")*0.4+
			v.Get("control_vs_vulnerability")*0.3+
			v.Get("total_ambiguity")*0.3)

	// 11. Finalize: NaN to 0, then clip every column into [0, 1].
	for _, name := range v.names {
		value := v.values[name]
		if math.IsNaN(value) {
			value = 0
		}
		v.values[name] = math.Min(1, math.Max(0, value))
	}

	return v
}

func containsToken(tokens []string, code string) bool {
	for _, t := range tokens {
		if t == code {
			return true
		}
	}
	return false
}

// sampleStdev returns the sample standard deviation, or 0 when it is
// undefined for the input.
func sampleStdev(values []float64) float64 {
	sd, err := stats.StandardDeviationSample(values)
	if err != nil || math.IsNaN(sd) {
		return 0
	}
	return sd
}

func b2f(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}
