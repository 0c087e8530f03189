// Package scraper turns feed HTML into display text.
//
// Feed descriptions arrive as HTML fragments. Text extracts their visible
// text with goquery, Cut shortens it on rune boundaries, and Sanitizer
// strips unsafe markup from user-authored HTML with bluemonday.
package scraper
