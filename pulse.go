// Package pulse extracts market ticker cards and "latest news" items from a
// saved news/finance portal snapshot. The markup of such portals drifts
// freely, so extraction is heuristic: signal detectors match class names
// and text shapes instead of fixed selectors.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package pulse
