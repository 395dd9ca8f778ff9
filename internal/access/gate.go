// Package access decides whether rendered output must carry the premium watermark.
package access

import "github.com/jonathan/resume-builder/internal/catalog"

// ShouldWatermark reports whether output rendered with t must be watermarked
// for a caller with the given subscription state: premium templates are
// watermarked for callers without a subscription, and nothing else is.
func ShouldWatermark(t catalog.Template, subscribed bool) bool {
	return t.IsPremium && !subscribed
}
