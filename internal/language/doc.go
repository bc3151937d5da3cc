// Package language picks the caption track to download from a manifest,
// honoring an ordered preference list and the manual-versus-auto-generated
// policy. BCP 47 matching handles regional variants (pt matches pt-BR).
package language
