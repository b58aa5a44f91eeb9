// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package dns

import (
	"context"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/internal/log"
)

// Record is one domain resource record.
type Record struct {
	RecordID   string `json:"RecordId"`
	RR         string `json:"RR"`
	Type       string `json:"Type"`
	Value      string `json:"Value"`
	DomainName string `json:"DomainName"`
	TTL        int    `json:"TTL"`
	Status     string `json:"Status"`
}

// Client wraps a signed connection to the DNS endpoint.
type Client struct {
	conn *aliyun.Connection
}

// New builds a DNS client. The region is carried for envelope compatibility
// only; requests naming a domain omit it.
func New(region string, opts ...aliyun.Option) (*Client, error) {
	conn, err := aliyun.New(region, aliyun.ServiceDNS, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewFromConnection wraps an existing connection. The connection must target
// the DNS service.
func NewFromConnection(conn *aliyun.Connection) *Client {
	return &Client{conn: conn}
}

// Connection exposes the underlying connection for generic passthrough use.
func (c *Client) Connection() *aliyun.Connection { return c.conn }

// AddRecord adds a resource record to a domain and returns the new record
// id. recordType is A, CNAME, PTR and so on.
func (c *Client) AddRecord(ctx context.Context, domainName, rr, recordType, value string) (string, error) {
	if rr == "" || value == "" {
		return "", aliyun.ErrInvalidArgument
	}

	var resp struct {
		RecordID string `json:"RecordId"`
	}
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":     "AddDomainRecord",
		"DomainName": domainName,
		"RR":         rr,
		"Type":       recordType,
		"Value":      value,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.RecordID, nil
}

// DescribeRecords lists the resource records of a domain.
func (c *Client) DescribeRecords(ctx context.Context, domainName string) ([]Record, error) {
	var resp struct {
		DomainRecords struct {
			Record []Record `json:"Record"`
		} `json:"DomainRecords"`
	}
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":     "DescribeDomainRecords",
		"DomainName": domainName,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.DomainRecords.Record, nil
}

// RecordID finds the id of the record matching the rr and value pair. An
// empty string means no match.
func (c *Client) RecordID(ctx context.Context, domainName, rr, value string) (string, error) {
	records, err := c.DescribeRecords(ctx, domainName)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if record.RR == rr && record.Value == value {
			return record.RecordID, nil
		}
	}
	return "", nil
}

// DeleteRecord deletes the record matching the rr and value pair. Deleting a
// record that does not exist is not an error.
func (c *Client) DeleteRecord(ctx context.Context, domainName, rr, value string) error {
	recordID, err := c.RecordID(ctx, domainName, rr, value)
	if err != nil {
		return err
	}
	if recordID == "" {
		log.Debugf("no such record: domain=%s rr=%s", domainName, rr)
		return nil
	}
	return c.conn.Get(ctx, aliyun.Params{
		"Action":   "DeleteDomainRecord",
		"RecordId": recordID,
	}, nil)
}
