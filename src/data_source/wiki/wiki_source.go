package wiki

import (
	"fmt"
	"strconv"
	"time"

	"lotus-ge/src/interfaces"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"

	"github.com/goccy/go-json"
)

// -----------------------------------------------------------------------------

// WikiPriceSource talks to the OSRS wiki real-time prices API. Every
// successful request is followed by a fixed courtesy delay before the call
// returns, which keeps the strictly sequential caller under the upstream
// rate limit.
type WikiPriceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewWikiPriceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *WikiPriceSource {
	return &WikiPriceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger("WikiPriceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *WikiPriceSource) get(endpoint string, params map[string]string) ([]byte, error) {
	body, err := s.Network.Get(s.Config.Collector.BaseURL+endpoint, params)
	if err != nil {
		return nil, err
	}

	// Courtesy delay between sequential API calls.
	time.Sleep(time.Duration(s.Config.Network.RequestDelaySeconds) * time.Second)
	return body, nil
}

// -----------------------------------------------------------------------------

type timeseriesResponse struct {
	Data      map[string]models.MSnapshotEntry `json:"data"`
	Timestamp int64                            `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// FetchSnapshot fetches one timeseries snapshot for a resolution endpoint.
// timestamp 0 requests the newest snapshot.
func (s *WikiPriceSource) FetchSnapshot(endpoint string, timestamp int64) (models.MPriceSnapshot, error) {
	var params map[string]string
	if timestamp > 0 {
		params = map[string]string{"timestamp": strconv.FormatInt(timestamp, 10)}
	}

	body, err := s.get(endpoint, params)
	if err != nil {
		return models.MPriceSnapshot{}, err
	}

	return ParseSnapshot(body)
}

// -----------------------------------------------------------------------------

// ParseSnapshot decodes a timeseries response body. Missing per-item fields
// decode to nil and stay nil all the way into storage.
func ParseSnapshot(body []byte) (models.MPriceSnapshot, error) {
	var resp timeseriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.MPriceSnapshot{}, fmt.Errorf("snapshot unmarshal failed: %w", err)
	}

	snap := models.MPriceSnapshot{
		Timestamp: resp.Timestamp,
		Data:      make(map[int]models.MSnapshotEntry, len(resp.Data)),
	}

	for idStr, entry := range resp.Data {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			// Unparseable item keys are skipped, not fatal.
			continue
		}
		snap.Data[id] = entry
	}

	return snap, nil
}

// -----------------------------------------------------------------------------

type latestResponse struct {
	Data map[string]struct {
		High     *float64 `json:"high"`
		HighTime *int64   `json:"highTime"`
		Low      *float64 `json:"low"`
		LowTime  *int64   `json:"lowTime"`
	} `json:"data"`
}

// -----------------------------------------------------------------------------

// FetchLatest fetches the instantaneous price table.
func (s *WikiPriceSource) FetchLatest() ([]models.MLatestPrice, error) {
	body, err := s.get("latest", nil)
	if err != nil {
		return nil, err
	}

	var resp latestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("latest unmarshal failed: %w", err)
	}

	prices := make([]models.MLatestPrice, 0, len(resp.Data))
	for idStr, p := range resp.Data {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		prices = append(prices, models.MLatestPrice{
			ItemID:   id,
			High:     p.High,
			HighTime: p.HighTime,
			Low:      p.Low,
			LowTime:  p.LowTime,
		})
	}

	s.Logger.Info("Fetched latest prices for %d items", len(prices))
	return prices, nil
}

// -----------------------------------------------------------------------------

type mappingEntry struct {
	ID       int    `json:"id"`
	Members  bool   `json:"members"`
	LowAlch  int    `json:"lowalch"`
	Limit    int    `json:"limit"`
	Value    int    `json:"value"`
	HighAlch int    `json:"highalch"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
}

// -----------------------------------------------------------------------------

// FetchMapping fetches the item metadata table.
func (s *WikiPriceSource) FetchMapping() ([]models.MItemMapping, error) {
	body, err := s.get("mapping", nil)
	if err != nil {
		return nil, err
	}

	var entries []mappingEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("mapping unmarshal failed: %w", err)
	}

	items := make([]models.MItemMapping, 0, len(entries))
	for _, e := range entries {
		members := 0
		if e.Members {
			members = 1
		}
		items = append(items, models.MItemMapping{
			ItemID:   e.ID,
			Members:  members,
			LowAlch:  e.LowAlch,
			BuyLimit: e.Limit,
			Value:    e.Value,
			HighAlch: e.HighAlch,
			Icon:     e.Icon,
			Name:     e.Name,
		})
	}

	s.Logger.Info("Fetched mapping for %d items", len(items))
	return items, nil
}
