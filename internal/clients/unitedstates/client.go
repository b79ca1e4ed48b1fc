package unitedstates

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/httpfetch"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

const (
	defaultLegislatorsURL = "https://raw.githubusercontent.com/unitedstates/congress-legislators/main/legislators-current.yaml"
	defaultHouseRollURL   = "https://clerk.house.gov/evs/%d/roll%03d.xml"
)

// RawLegislator mirrors one entry of the legislators-current YAML feed.
type RawLegislator struct {
	ID struct {
		Bioguide string `yaml:"bioguide"`
		Icpsr    int    `yaml:"icpsr"`
	} `yaml:"id"`
	Name struct {
		First string `yaml:"first"`
		Last  string `yaml:"last"`
	} `yaml:"name"`
	Bio struct {
		Birthday string `yaml:"birthday"`
		Gender   string `yaml:"gender"`
	} `yaml:"bio"`
	Terms []RawTerm `yaml:"terms"`
}

type RawTerm struct {
	Type            string         `yaml:"type"`
	Start           string         `yaml:"start"`
	End             string         `yaml:"end"`
	State           string         `yaml:"state"`
	District        *int           `yaml:"district"`
	Party           string         `yaml:"party"`
	URL             string         `yaml:"url"`
	Address         string         `yaml:"address"`
	Congress        int            `yaml:"congress"`
	LeadershipTitle string         `yaml:"leadership_title"`
	Committees      []RawCommittee `yaml:"committees"`
}

type RawCommittee struct {
	Name         string `yaml:"name"`
	Subcommittee string `yaml:"subcommittee"`
	Position     string `yaml:"position"`
}

// HouseRollCall mirrors the clerk.house.gov roll call XML.
type HouseRollCall struct {
	XMLName  xml.Name `xml:"rollcall-vote"`
	Metadata struct {
		Congress   int    `xml:"congress"`
		LegisNum   string `xml:"legis-num"`
		Question   string `xml:"question-text"`
		VoteDesc   string `xml:"vote-desc"`
		VoteResult string `xml:"vote-result"`
		ActionDate string `xml:"action-date"`
	} `xml:"vote-metadata"`
	Records []HouseRollRecord `xml:"vote-data>recorded-vote"`
}

type HouseRollRecord struct {
	Legislator struct {
		NameID     string `xml:"name-id,attr"`
		BioguideID string `xml:"bioGuideId,attr"`
	} `xml:"legislator"`
	Vote string `xml:"vote"`
}

// BioguideID prefers the modern name-id attribute and falls back to the
// older bioGuideId spelling some archives carry.
func (r HouseRollRecord) BioguideID() string {
	if r.Legislator.NameID != "" {
		return r.Legislator.NameID
	}
	return r.Legislator.BioguideID
}

func (rc *HouseRollCall) ActionDate() (time.Time, error) {
	return time.Parse("2-Jan-2006", rc.Metadata.ActionDate)
}

type Client struct {
	log            *logger.Logger
	fetcher        *httpfetch.Fetcher
	legislatorsURL string
	houseRollURL   string
}

func NewClient(log *logger.Logger, fetcher *httpfetch.Fetcher) *Client {
	clientLog := log.With("client", "UnitedStatesClient")
	return &Client{
		log:            clientLog,
		fetcher:        fetcher,
		legislatorsURL: utils.GetEnv("LEGIS_YAML_URL", defaultLegislatorsURL, log),
		houseRollURL:   utils.GetEnv("HOUSE_ROLL_URL", defaultHouseRollURL, log),
	}
}

func (c *Client) FetchCurrentLegislators(ctx context.Context) ([]RawLegislator, error) {
	body, err := c.fetcher.Get(ctx, c.legislatorsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch legislators yaml: %w", err)
	}
	var entries []RawLegislator
	if err := yaml.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse legislators yaml: %w", err)
	}
	c.log.Info("Legislators YAML loaded", "records", len(entries))
	return entries, nil
}

// FetchHouseRoll returns (nil, nil) when the roll does not exist, so
// callers can count consecutive misses and stop scanning.
func (c *Client) FetchHouseRoll(ctx context.Context, year, roll int) (*HouseRollCall, error) {
	url := fmt.Sprintf(c.houseRollURL, year, roll)
	body, err := c.fetcher.Get(ctx, url)
	if err != nil {
		if errors.Is(err, httpfetch.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch house roll %d: %w", roll, err)
	}
	var rollCall HouseRollCall
	if err := xml.Unmarshal(body, &rollCall); err != nil {
		return nil, fmt.Errorf("parse house roll %d: %w", roll, err)
	}
	return &rollCall, nil
}

func ParseRollCall(raw []byte) (*HouseRollCall, error) {
	var rollCall HouseRollCall
	if err := xml.Unmarshal(raw, &rollCall); err != nil {
		return nil, err
	}
	return &rollCall, nil
}

// MarshalAddress keeps the term's mailing address as the JSONB office
// contact payload the legislators table stores.
func MarshalAddress(address string) json.RawMessage {
	if address == "" {
		return json.RawMessage(`{}`)
	}
	raw, err := json.Marshal(map[string]string{"address": address})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
