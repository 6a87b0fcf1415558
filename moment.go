package docwright

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Caps on moment output.
const (
	// MaxKeyMoments bounds transcript-derived key moments.
	MaxKeyMoments = 20

	// MaxCaptureMoments bounds moments selected for screenshot capture.
	MaxCaptureMoments = 15

	// maxMomentDescription truncates transcript text used as a moment
	// description.
	maxMomentDescription = 120
)

// MomentWeights holds the scoring tables used to rank moments and compute
// screenshot relevance. The defaults preserve a fixed relative ordering
// (step > demonstration > result > explanation, high > medium > low); they
// are exposed as data rather than literals so callers can tune them.
type MomentWeights struct {
	Importance map[Importance]float64
	Action     map[ActionType]float64
}

// DefaultMomentWeights returns the standard weight tables. Importance
// bonuses span 0.1-0.4 and action bonuses 0.05-0.3 on top of the 0.5
// relevance base.
func DefaultMomentWeights() MomentWeights {
	return MomentWeights{
		Importance: map[Importance]float64{
			ImportanceHigh:   0.4,
			ImportanceMedium: 0.2,
			ImportanceLow:    0.1,
		},
		Action: map[ActionType]float64{
			ActionStep:          0.3,
			ActionDemonstration: 0.2,
			ActionResult:        0.1,
			ActionExplanation:   0.05,
		},
	}
}

// keywordFamily associates an action type with the words that indicate it.
// Families are tested in order; the first match classifies the segment.
// English and Spanish keyword sets are honored.
type keywordFamily struct {
	action   ActionType
	keywords []string
}

var keywordFamilies = []keywordFamily{
	{ActionStep, []string{
		"step", "first", "second", "third", "next", "then", "finally", "now",
		"paso", "primero", "segundo", "luego", "ahora", "finalmente",
	}},
	{ActionExplanation, []string{
		"because", "reason", "why", "means", "explain", "basically",
		"porque", "razon", "significa", "explicar",
	}},
	{ActionDemonstration, []string{
		"show", "demonstrate", "example", "see", "watch", "look",
		"muestra", "ejemplo", "veamos", "observa",
	}},
	{ActionResult, []string{
		"result", "done", "finished", "complete", "ready", "works",
		"resultado", "listo", "terminado", "completo",
	}},
}

// classifySegment assigns an action type and importance to one transcript
// segment. Step matches are high importance, demonstration and result matches
// medium, everything else low.
func classifySegment(text string) (ActionType, Importance) {
	lower := strings.ToLower(text)
	for _, family := range keywordFamilies {
		for _, kw := range family.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			switch family.action {
			case ActionStep:
				return family.action, ImportanceHigh
			case ActionDemonstration, ActionResult:
				return family.action, ImportanceMedium
			default:
				return family.action, ImportanceLow
			}
		}
	}
	return ActionExplanation, ImportanceLow
}

// AnalyzeTranscript derives key moments from transcript segments. A segment
// is retained when its importance is above low, or when its position is a
// multiple of 10 so that sparse-signal transcripts still get baseline
// temporal coverage. Output is capped at MaxKeyMoments, in transcript order.
func AnalyzeTranscript(segments []TranscriptSegment) []VideoMoment {
	var moments []VideoMoment
	for i, seg := range segments {
		if len(moments) >= MaxKeyMoments {
			break
		}

		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		action, importance := classifySegment(text)
		if importance == ImportanceLow && i%10 != 0 {
			continue
		}

		moments = append(moments, VideoMoment{
			Timestamp:   seg.Start,
			Description: truncate(text, maxMomentDescription),
			Importance:  importance,
			Action:      action,
		})
	}
	return moments
}

// PlaceholderMoments synthesizes evenly spaced moments when no transcript is
// available: one per minute of duration, between 1 and 5 total. When the
// duration is also unknown, a single moment at timestamp 0 is returned.
// This is a best-effort approximation, not a calibrated heuristic.
func PlaceholderMoments(duration float64) []VideoMoment {
	if duration <= 0 {
		return []VideoMoment{{
			Timestamp:   0,
			Description: "Video content",
			Importance:  ImportanceMedium,
			Action:      ActionExplanation,
		}}
	}

	n := int(duration / 60)
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}

	moments := make([]VideoMoment, 0, n)
	interval := duration / float64(n+1)
	for i := 1; i <= n; i++ {
		moments = append(moments, VideoMoment{
			Timestamp:   math.Round(interval * float64(i)),
			Description: fmt.Sprintf("Video segment %d", i),
			Importance:  ImportanceMedium,
			Action:      ActionExplanation,
		})
	}
	return moments
}

// PrioritizeForCapture selects the moments worth a screenshot: those of high
// importance or depicting a step or demonstration, sorted descending by
// combined weight and capped at MaxCaptureMoments. The sort is stable so ties
// keep transcript order.
func PrioritizeForCapture(moments []VideoMoment, weights MomentWeights) []VideoMoment {
	selected := make([]VideoMoment, 0, len(moments))
	for _, m := range moments {
		if m.Importance == ImportanceHigh || m.Action == ActionStep || m.Action == ActionDemonstration {
			selected = append(selected, m)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		si := weights.Importance[selected[i].Importance] + weights.Action[selected[i].Action]
		sj := weights.Importance[selected[j].Importance] + weights.Action[selected[j].Action]
		return si > sj
	})

	if len(selected) > MaxCaptureMoments {
		selected = selected[:MaxCaptureMoments]
	}
	return selected
}

// ScreenshotRelevance scores how well a captured moment matches the content:
// a 0.5 base plus the importance and action bonuses, clamped to [0,1].
func ScreenshotRelevance(m VideoMoment, weights MomentWeights) float64 {
	score := 0.5 + weights.Importance[m.Importance] + weights.Action[m.Action]
	return math.Min(1, math.Max(0, score))
}

// truncate shortens s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := n
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	cut := s[:end]
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "..."
}
