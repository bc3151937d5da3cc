package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ccget/internal/captions"
	"ccget/internal/logging"
)

const (
	defaultBaseURL       = "https://www.youtube.com"
	defaultClientName    = "ANDROID"
	defaultClientVersion = "19.09.37"
	defaultUserAgent     = "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip"
	defaultHTTPTimeout   = 30 * time.Second

	androidSDKVersion = 30
	kindAutoGenerated = "asr"
)

// Config describes the innertube client configuration.
type Config struct {
	BaseURL       string
	ClientName    string
	ClientVersion string
	UserAgent     string
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Client wraps the unauthenticated innertube player API.
type Client struct {
	clientName    string
	clientVersion string
	userAgent     string
	baseURL       *url.URL
	http          *http.Client
	logger        *slog.Logger
}

// New creates a Client from the supplied configuration. Every field is
// optional; zero values fall back to the Android client defaults.
func New(cfg Config) (*Client, error) {
	clientName := strings.TrimSpace(cfg.ClientName)
	if clientName == "" {
		clientName = defaultClientName
	}
	clientVersion := strings.TrimSpace(cfg.ClientVersion)
	if clientVersion == "" {
		clientVersion = defaultClientVersion
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("youtube: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		clientName:    clientName,
		clientVersion: clientVersion,
		userAgent:     userAgent,
		baseURL:       baseURL,
		http:          client,
		logger:        logging.NewComponentLogger(logger, "youtube"),
	}, nil
}

// Player bundles the video metadata and the raw caption track catalog lifted
// from a player response.
type Player struct {
	VideoID       string
	Title         string
	Author        string
	LengthSeconds int64
	Tracks        []captions.TrackRecord
}

// Player fetches the player response for the given video. Caption track
// entries are copied verbatim; catalog validation belongs to the captions
// package.
func (c *Client) Player(ctx context.Context, videoID string) (*Player, error) {
	if c == nil {
		return nil, errors.New("youtube: client is nil")
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errors.New("youtube: video id is required")
	}

	body := playerRequest{
		VideoID: videoID,
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:        c.clientName,
				ClientVersion:     c.clientVersion,
				AndroidSDKVersion: androidSDKVersion,
				UserAgent:         c.userAgent,
				HL:                "en",
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("youtube: encode player request: %w", err)
	}

	endpoint := c.baseURL.JoinPath("youtubei", "v1", "player")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("youtube: build player request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.applyHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("youtube: player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("youtube: player lookup failed (%s): %s", resp.Status, strings.TrimSpace(string(errBody)))
	}

	var decoded playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("youtube: decode player response: %w", err)
	}

	if status := decoded.PlayabilityStatus; status.Status != "" && status.Status != "OK" {
		if status.Reason != "" {
			return nil, fmt.Errorf("youtube: video %s is not playable (%s): %s", videoID, status.Status, status.Reason)
		}
		return nil, fmt.Errorf("youtube: video %s is not playable (%s)", videoID, status.Status)
	}

	rawTracks := decoded.Captions.Renderer.CaptionTracks
	tracks := make([]captions.TrackRecord, 0, len(rawTracks))
	for _, track := range rawTracks {
		tracks = append(tracks, captions.TrackRecord{
			URL:           track.BaseURL,
			LanguageCode:  track.LanguageCode,
			LanguageName:  track.Name.text(),
			AutoGenerated: track.Kind == kindAutoGenerated,
		})
	}

	length, _ := strconv.ParseInt(decoded.VideoDetails.LengthSeconds, 10, 64)
	player := &Player{
		VideoID:       decoded.VideoDetails.VideoID,
		Title:         decoded.VideoDetails.Title,
		Author:        decoded.VideoDetails.Author,
		LengthSeconds: length,
		Tracks:        tracks,
	}
	c.logger.Debug("player response fetched",
		logging.String(logging.FieldVideoID, videoID),
		logging.Int("caption_tracks", len(tracks)))
	return player, nil
}

// PlayerDocument projects the player response onto the captions.Source
// contract.
func (c *Client) PlayerDocument(ctx context.Context, videoID string) (*captions.PlayerDocument, error) {
	player, err := c.Player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &captions.PlayerDocument{Tracks: player.Tracks}, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
}

type playerRequest struct {
	VideoID string           `json:"videoId"`
	Context innertubeContext `json:"context"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
	UserAgent         string `json:"userAgent,omitempty"`
	HL                string `json:"hl,omitempty"`
}

type playerResponse struct {
	PlayabilityStatus playabilityStatus `json:"playabilityStatus"`
	VideoDetails      videoDetails      `json:"videoDetails"`
	Captions          struct {
		Renderer captionsRenderer `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type videoDetails struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	LengthSeconds string `json:"lengthSeconds"`
}

type captionsRenderer struct {
	CaptionTracks []captionTrack `json:"captionTracks"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         trackName `json:"name"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"`
}

type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n trackName) text() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var b strings.Builder
	for _, run := range n.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}
