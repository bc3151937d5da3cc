package language

import (
	"errors"
	"fmt"
	"strings"

	xlang "golang.org/x/text/language"

	"ccget/internal/captions"
)

// Preference describes how a caption track is chosen.
type Preference struct {
	// Languages is the ordered preference list, highest priority first.
	Languages []string
	// PreferManual tries human-authored tracks before auto-generated ones.
	PreferManual bool
	// FallbackAuto permits auto-generated tracks. When false they are
	// excluded entirely.
	FallbackAuto bool
}

// Select picks one track from the manifest. Preferences are tried in order;
// the first language with any eligible track wins. Within one language an
// exact code match beats a BCP 47 variant match.
func Select(manifest *captions.Manifest, pref Preference) (captions.TrackInfo, error) {
	if manifest == nil || manifest.Len() == 0 {
		return captions.TrackInfo{}, errors.New("language: no caption tracks available")
	}
	if len(pref.Languages) == 0 {
		return captions.TrackInfo{}, errors.New("language: no preferred languages configured")
	}

	pools := candidatePools(manifest, pref)
	for _, want := range pref.Languages {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		for _, pool := range pools {
			if track, ok := matchPool(pool, want); ok {
				return track, nil
			}
		}
	}
	return captions.TrackInfo{}, fmt.Errorf("language: no %s captions available (have: %s)",
		strings.Join(pref.Languages, ", "), available(manifest))
}

// candidatePools orders the manifest tracks into search pools. With
// PreferManual set, manual tracks form their own higher-priority pool;
// without FallbackAuto, auto-generated tracks never enter any pool.
func candidatePools(manifest *captions.Manifest, pref Preference) [][]captions.TrackInfo {
	switch {
	case pref.PreferManual && pref.FallbackAuto:
		return [][]captions.TrackInfo{manifest.Manual(), manifest.AutoGenerated()}
	case pref.FallbackAuto:
		return [][]captions.TrackInfo{manifest.Tracks()}
	default:
		return [][]captions.TrackInfo{manifest.Manual()}
	}
}

func matchPool(pool []captions.TrackInfo, want string) (captions.TrackInfo, bool) {
	for _, track := range pool {
		if strings.EqualFold(track.Language.Code, want) {
			return track, true
		}
	}

	wantTag, err := xlang.Parse(want)
	if err != nil {
		return captions.TrackInfo{}, false
	}
	tags := make([]xlang.Tag, 0, len(pool))
	indexes := make([]int, 0, len(pool))
	for i, track := range pool {
		tag, err := xlang.Parse(track.Language.Code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		indexes = append(indexes, i)
	}
	if len(tags) == 0 {
		return captions.TrackInfo{}, false
	}
	matcher := xlang.NewMatcher(tags)
	if _, index, conf := matcher.Match(wantTag); conf >= xlang.High {
		return pool[indexes[index]], true
	}
	return captions.TrackInfo{}, false
}

func available(manifest *captions.Manifest) string {
	tracks := manifest.Tracks()
	codes := make([]string, 0, len(tracks))
	for _, track := range tracks {
		code := track.Language.Code
		if track.AutoGenerated {
			code += " (auto)"
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return "none"
	}
	return strings.Join(codes, ", ")
}
