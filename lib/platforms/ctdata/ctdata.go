// Package ctdata fetches liquor license data from the State of Connecticut
// open data portal (a Socrata instance).
package ctdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"liquorstores/internal/listing"
	"liquorstores/lib/restyutil"
	"liquorstores/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("liquorstores.lib.platforms.ctdata")

var ErrUnexpectedStatus = errors.New("unexpected response status")

const (
	DefaultBaseUrl          = "https://data.ct.gov"
	DefaultLicenseDataset   = "ngch-56tr"
	DefaultTownLimitDataset = "fiq7-t34m"
	DefaultStatus           = "ACTIVE"
	DefaultCredential       = "PACKAGE STORE LIQUOR"
	DefaultLimit            = 1500
)

type ClientOptions struct {
	BaseUrl          string
	LicenseDataset   string
	TownLimitDataset string
	// Status and Credential select which licenses are fetched.
	Status     string
	Credential string
	// Limit bounds the amount of license rows, 0 means DefaultLimit.
	Limit   int
	Timeout time.Duration
	// InstrumentOutput receives full HTTP exchanges while debug logging is on, it may be nil.
	InstrumentOutput restyutil.InstrumentOutput
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.BaseUrl == "" {
		o.BaseUrl = DefaultBaseUrl
	}
	if o.LicenseDataset == "" {
		o.LicenseDataset = DefaultLicenseDataset
	}
	if o.TownLimitDataset == "" {
		o.TownLimitDataset = DefaultTownLimitDataset
	}
	if o.Status == "" {
		o.Status = DefaultStatus
	}
	if o.Credential == "" {
		o.Credential = DefaultCredential
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Second * 30
	}
	return o
}

type Client struct {
	opts ClientOptions
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	opts = opts.withDefaults()

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseUrl, "/"))
	client.SetTimeout(opts.Timeout)
	client.SetHeader("accept", "application/json")
	restyutil.InstrumentClient(client, "ctdata", tracer, opts.InstrumentOutput)

	return &Client{opts: opts, http: client}
}

// quote renders a SoQL string literal.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// LicenseQuery is the SoQL $where clause selecting the configured licenses.
func (c *Client) LicenseQuery() string {
	return fmt.Sprintf(
		"status=%s AND credential=%s",
		quote(c.opts.Status),
		quote(c.opts.Credential),
	)
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("GET %s: %w: %s", path, ErrUnexpectedStatus, res.Status())
	}
	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Licenses fetches the active package store licenses, at most Limit rows.
func (c *Client) Licenses(ctx context.Context) ([]listing.License, error) {
	ctx, span := tracer.Start(ctx, "ctdata:Licenses")
	defer span.End()

	var licenses []listing.License
	err := c.getJSON(
		ctx,
		fmt.Sprintf("/resource/%s.json", c.opts.LicenseDataset),
		map[string]string{
			"$where": c.LicenseQuery(),
			"$limit": strconv.Itoa(c.opts.Limit),
		},
		&licenses,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch licenses")
		return nil, err
	}

	span.SetAttributes(attribute.Int("licenses", len(licenses)))
	return licenses, nil
}

// TownLimits fetches the per town maximum license counts.
func (c *Client) TownLimits(ctx context.Context) ([]listing.TownLimit, error) {
	ctx, span := tracer.Start(ctx, "ctdata:TownLimits")
	defer span.End()

	var limits []listing.TownLimit
	err := c.getJSON(
		ctx,
		fmt.Sprintf("/api/id/%s.json", c.opts.TownLimitDataset),
		nil,
		&limits,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch town limits")
		return nil, err
	}

	span.SetAttributes(attribute.Int("towns", len(limits)))
	return limits, nil
}
