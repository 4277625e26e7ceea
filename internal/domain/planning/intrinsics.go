package planning

import "strings"

// intrinsicMapping pairs one x86 SSE intrinsic with its ARM NEON
// equivalent.
type intrinsicMapping struct {
	x86  string
	neon string
}

// intrinsicMappings is the static substitution table for intrinsic calls.
// Ordered: the first entry contained in the matched text wins.
var intrinsicMappings = []intrinsicMapping{
	{"_mm_add_ps", "vaddq_f32"},
	{"_mm_sub_ps", "vsubq_f32"},
	{"_mm_mul_ps", "vmulq_f32"},
	{"_mm_div_ps", "vdivq_f32"},
	{"_mm_load_ps", "vld1q_f32"},
	{"_mm_store_ps", "vst1q_f32"},
	{"_mm_set1_ps", "vdupq_n_f32"},
	{"_mm_add_epi32", "vaddq_s32"},
	{"_mm_sub_epi32", "vsubq_s32"},
	{"_mm_mullo_epi32", "vmulq_s32"},
	{"_mm_load_si128", "vld1q_s32"},
	{"_mm_store_si128", "vst1q_s32"},
}

// neonEquivalent substitutes a known x86 intrinsic inside matched with its
// NEON counterpart. The substitution is textual only; nothing verifies the
// result compiles or preserves semantics.
func neonEquivalent(matched string) (string, bool) {
	for _, m := range intrinsicMappings {
		if strings.Contains(matched, m.x86) {
			return strings.ReplaceAll(matched, m.x86, m.neon), true
		}
	}
	return "", false
}
