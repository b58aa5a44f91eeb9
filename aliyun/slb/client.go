// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package slb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/internal/log"
)

// Client wraps a signed connection to the SLB endpoint.
type Client struct {
	conn *aliyun.Connection
}

// New builds an SLB client for a region. Options are passed through to the
// underlying connection.
func New(region string, opts ...aliyun.Option) (*Client, error) {
	conn, err := aliyun.New(region, aliyun.ServiceSLB, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewFromConnection wraps an existing connection. The connection must target
// the SLB service.
func NewFromConnection(conn *aliyun.Connection) *Client {
	return &Client{conn: conn}
}

// Connection exposes the underlying connection for generic passthrough use.
func (c *Client) Connection() *aliyun.Connection { return c.conn }

// DescribeRegions lists the regions offering SLB.
func (c *Client) DescribeRegions(ctx context.Context) ([]Region, error) {
	var resp struct {
		Regions struct {
			Region []Region `json:"Region"`
		} `json:"Regions"`
	}
	err := c.conn.Get(ctx, aliyun.Params{"Action": "DescribeRegions"}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Regions.Region, nil
}

// DescribeLoadBalancers lists the load balancers in the region, optionally
// restricted to those containing the backend server.
func (c *Client) DescribeLoadBalancers(ctx context.Context, serverID string) ([]LoadBalancerStatus, error) {
	params := aliyun.Params{"Action": "DescribeLoadBalancers"}
	if serverID != "" {
		params["ServerId"] = serverID
	}

	var resp struct {
		LoadBalancers struct {
			LoadBalancer []LoadBalancerStatus `json:"LoadBalancer"`
		} `json:"LoadBalancers"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return nil, err
	}
	return resp.LoadBalancers.LoadBalancer, nil
}

// LoadBalancerIDs lists the load balancer ids in the region.
func (c *Client) LoadBalancerIDs(ctx context.Context) ([]string, error) {
	statuses, err := c.DescribeLoadBalancers(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.LoadBalancerID)
	}
	return ids, nil
}

// DescribeLoadBalancer returns the full attribute document for one load
// balancer.
func (c *Client) DescribeLoadBalancer(ctx context.Context, loadBalancerID string) (*LoadBalancer, error) {
	var lb LoadBalancer
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":         "DescribeLoadBalancerAttribute",
		"LoadBalancerId": loadBalancerID,
	}, &lb)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

// DeleteLoadBalancer deletes a load balancer.
func (c *Client) DeleteLoadBalancer(ctx context.Context, loadBalancerID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "DeleteLoadBalancer",
		"LoadBalancerId": loadBalancerID,
	}, nil)
}

// CreateLoadBalancerArgs are the optional CreateLoadBalancer attributes.
type CreateLoadBalancerArgs struct {
	// AddressType is "internet" (default) or "intranet".
	AddressType string
	// InternetChargeType is "paybytraffic" (default) or "paybybandwidth".
	InternetChargeType string
	// Bandwidth is the peak burst speed in Mbps for paybybandwidth balancers.
	Bandwidth int
	// Name is the balancer alias, 80 characters max.
	Name string
}

// CreateLoadBalancer creates a load balancer with no listeners or backends
// and returns its id.
func (c *Client) CreateLoadBalancer(ctx context.Context, args CreateLoadBalancerArgs) (string, error) {
	params := aliyun.Params{"Action": "CreateLoadBalancer"}
	if args.Name != "" {
		params["LoadBalancerName"] = args.Name
	}
	if args.AddressType != "" {
		params["AddressType"] = strings.ToLower(args.AddressType)
	}
	if args.InternetChargeType != "" {
		params["InternetChargeType"] = strings.ToLower(args.InternetChargeType)
	}
	if args.Bandwidth > 0 {
		params["Bandwidth"] = fmt.Sprintf("%d", args.Bandwidth)
	}

	var resp struct {
		LoadBalancerID   string `json:"LoadBalancerId"`
		LoadBalancerName string `json:"LoadBalancerName"`
		Address          string `json:"Address"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return "", err
	}
	log.Debugf("load balancer created: id=%s name=%s address=%s",
		resp.LoadBalancerID, resp.LoadBalancerName, resp.Address)
	return resp.LoadBalancerID, nil
}

// SetLoadBalancerStatus sets a balancer to "active" or "inactive".
func (c *Client) SetLoadBalancerStatus(ctx context.Context, loadBalancerID, status string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":             "SetLoadBalancerStatus",
		"LoadBalancerId":     loadBalancerID,
		"LoadBalancerStatus": status,
	}, nil)
}

// SetLoadBalancerName renames a balancer. Up to 64 characters.
func (c *Client) SetLoadBalancerName(ctx context.Context, loadBalancerID, name string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":           "SetLoadBalancerName",
		"LoadBalancerId":   loadBalancerID,
		"LoadBalancerName": name,
	}, nil)
}

// DeleteListener deletes the listener on the port.
func (c *Client) DeleteListener(ctx context.Context, loadBalancerID string, port int) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "DeleteLoadBalancerListener",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
	}, nil)
}

// SetListenerStatus sets a listener to "active" or "inactive".
func (c *Client) SetListenerStatus(ctx context.Context, loadBalancerID string, port int, status string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "SetLoadBalancerListenerStatus",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
		"ListenerStatus": status,
	}, nil)
}

// StartListener activates the listener on the port.
func (c *Client) StartListener(ctx context.Context, loadBalancerID string, port int) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "StartLoadBalancerListener",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
	}, nil)
}

// StopListener deactivates the listener on the port.
func (c *Client) StopListener(ctx context.Context, loadBalancerID string, port int) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "StopLoadBalancerListener",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
	}, nil)
}

// DescribeTCPListener returns the TCP listener on the port. A missing
// ConnectPort in the response defaults to the backend server port.
func (c *Client) DescribeTCPListener(ctx context.Context, loadBalancerID string, port int) (*TCPListener, error) {
	var listener TCPListener
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":         "DescribeLoadBalancerTCPListenerAttribute",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
	}, &listener)
	if err != nil {
		return nil, err
	}
	listener.LoadBalancerID = loadBalancerID
	if listener.ConnectPort == 0 {
		listener.ConnectPort = listener.BackendServerPort
	}
	return &listener, nil
}

// DescribeHTTPListener returns the HTTP listener on the port.
func (c *Client) DescribeHTTPListener(ctx context.Context, loadBalancerID string, port int) (*HTTPListener, error) {
	var listener HTTPListener
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":         "DescribeLoadBalancerHTTPListenerAttribute",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", port),
	}, &listener)
	if err != nil {
		return nil, err
	}
	listener.LoadBalancerID = loadBalancerID
	return &listener, nil
}

// CreateTCPListenerArgs are the CreateLoadBalancerTCPListener attributes.
// ListenerPort and BackendServerPort are required; zero-valued optionals are
// omitted from the request, leaving the API defaults in force.
type CreateTCPListenerArgs struct {
	ListenerPort       int
	BackendServerPort  int
	HealthyThreshold   int
	UnhealthyThreshold int
	// ListenerStatus is "active" (default) or "stopped".
	ListenerStatus string
	// Scheduler is "wrr" (round robin, default) or "wlc" (least connections).
	Scheduler string
	// HealthCheck is "on" or "off".
	HealthCheck        string
	ConnectTimeout     int
	Interval           int
	ConnectPort        int
	PersistenceTimeout int
}

// CreateTCPListener creates a TCP listener on a balancer.
func (c *Client) CreateTCPListener(ctx context.Context, loadBalancerID string, args CreateTCPListenerArgs) error {
	params := aliyun.Params{
		"Action":            "CreateLoadBalancerTCPListener",
		"LoadBalancerId":    loadBalancerID,
		"ListenerPort":      fmt.Sprintf("%d", args.ListenerPort),
		"BackendServerPort": fmt.Sprintf("%d", args.BackendServerPort),
	}
	if args.HealthyThreshold > 0 {
		params["HealthyThreshold"] = fmt.Sprintf("%d", args.HealthyThreshold)
	}
	if args.UnhealthyThreshold > 0 {
		params["UnhealthyThreshold"] = fmt.Sprintf("%d", args.UnhealthyThreshold)
	}
	if args.ListenerStatus != "" {
		params["ListenerStatus"] = args.ListenerStatus
	}
	if args.Scheduler != "" {
		params["Scheduler"] = args.Scheduler
	}
	if args.HealthCheck != "" {
		params["HealthCheck"] = args.HealthCheck
	}
	if args.ConnectTimeout > 0 {
		params["ConnectTimeout"] = fmt.Sprintf("%d", args.ConnectTimeout)
	}
	if args.Interval > 0 {
		params["Interval"] = fmt.Sprintf("%d", args.Interval)
	}
	if args.ConnectPort > 0 {
		params["ConnectPort"] = fmt.Sprintf("%d", args.ConnectPort)
	}
	if args.PersistenceTimeout > 0 {
		params["PersistenceTimeout"] = fmt.Sprintf("%d", args.PersistenceTimeout)
	}
	return c.conn.Get(ctx, params, nil)
}

// UpdateTCPListener updates an existing TCP listener. Zero-valued fields are
// left unchanged; ListenerStatus is ignored.
func (c *Client) UpdateTCPListener(ctx context.Context, loadBalancerID string, args CreateTCPListenerArgs) error {
	params := aliyun.Params{
		"Action":         "SetLoadBalancerTCPListenerAttribute",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", args.ListenerPort),
	}
	if args.HealthyThreshold > 0 {
		params["HealthyThreshold"] = fmt.Sprintf("%d", args.HealthyThreshold)
	}
	if args.UnhealthyThreshold > 0 {
		params["UnhealthyThreshold"] = fmt.Sprintf("%d", args.UnhealthyThreshold)
	}
	if args.Scheduler != "" {
		params["Scheduler"] = args.Scheduler
	}
	if args.HealthCheck != "" {
		params["HealthCheck"] = args.HealthCheck
	}
	if args.ConnectTimeout > 0 {
		params["ConnectTimeout"] = fmt.Sprintf("%d", args.ConnectTimeout)
	}
	if args.Interval > 0 {
		params["Interval"] = fmt.Sprintf("%d", args.Interval)
	}
	if args.ConnectPort > 0 {
		params["ConnectPort"] = fmt.Sprintf("%d", args.ConnectPort)
	}
	if args.PersistenceTimeout > 0 {
		params["PersistenceTimeout"] = fmt.Sprintf("%d", args.PersistenceTimeout)
	}
	return c.conn.Get(ctx, params, nil)
}

// CreateHTTPListenerArgs are the CreateLoadBalancerHTTPListener attributes.
// ListenerPort, BackendServerPort, Bandwidth, StickySession and HealthCheck
// are required by the API.
type CreateHTTPListenerArgs struct {
	ListenerPort      int
	BackendServerPort int
	// Bandwidth is the peak burst speed in Mbps, or -1 for unrestricted
	// (paybytraffic balancers only).
	Bandwidth int
	// StickySession is "on" or "off".
	StickySession string
	// HealthCheck is "on" or "off".
	HealthCheck        string
	HealthyThreshold   int
	UnhealthyThreshold int
	Scheduler          string
	ConnectTimeout     int
	Interval           int
	// XForwardedFor is "on" or "off".
	XForwardedFor string
	// StickySessionType is "insert" or "server"; StickySession must be "on".
	StickySessionType string
	CookieTimeout     int
	Cookie            string
	Domain            string
	URI               string
}

// CreateHTTPListener creates an HTTP listener on a balancer.
func (c *Client) CreateHTTPListener(ctx context.Context, loadBalancerID string, args CreateHTTPListenerArgs) error {
	params := aliyun.Params{
		"Action":            "CreateLoadBalancerHTTPListener",
		"LoadBalancerId":    loadBalancerID,
		"ListenerPort":      fmt.Sprintf("%d", args.ListenerPort),
		"BackendServerPort": fmt.Sprintf("%d", args.BackendServerPort),
		"Bandwidth":         fmt.Sprintf("%d", args.Bandwidth),
		"StickySession":     args.StickySession,
		"HealthCheck":       args.HealthCheck,
	}
	httpListenerOptions(args, params)
	return c.conn.Get(ctx, params, nil)
}

// UpdateHTTPListener updates an existing HTTP listener. Zero-valued fields
// are left unchanged.
func (c *Client) UpdateHTTPListener(ctx context.Context, loadBalancerID string, args CreateHTTPListenerArgs) error {
	params := aliyun.Params{
		"Action":         "SetLoadBalancerHTTPListenerAttribute",
		"LoadBalancerId": loadBalancerID,
		"ListenerPort":   fmt.Sprintf("%d", args.ListenerPort),
	}
	if args.StickySession != "" {
		params["StickySession"] = args.StickySession
	}
	if args.HealthCheck != "" {
		params["HealthCheck"] = args.HealthCheck
	}
	httpListenerOptions(args, params)
	return c.conn.Get(ctx, params, nil)
}

// httpListenerOptions renders the shared optional HTTP listener attributes.
func httpListenerOptions(args CreateHTTPListenerArgs, params aliyun.Params) {
	if args.HealthyThreshold > 0 {
		params["HealthyThreshold"] = fmt.Sprintf("%d", args.HealthyThreshold)
	}
	if args.UnhealthyThreshold > 0 {
		params["UnhealthyThreshold"] = fmt.Sprintf("%d", args.UnhealthyThreshold)
	}
	if args.Scheduler != "" {
		params["Scheduler"] = args.Scheduler
	}
	if args.ConnectTimeout > 0 {
		params["ConnectTimeout"] = fmt.Sprintf("%d", args.ConnectTimeout)
	}
	if args.Interval > 0 {
		params["Interval"] = fmt.Sprintf("%d", args.Interval)
	}
	if args.XForwardedFor != "" {
		params["XForwardedFor"] = args.XForwardedFor
	}
	if args.StickySessionType != "" {
		params["StickySessionapiType"] = args.StickySessionType
	}
	if args.CookieTimeout > 0 {
		params["CookieTimeout"] = fmt.Sprintf("%d", args.CookieTimeout)
	}
	if args.Cookie != "" {
		params["Cookie"] = args.Cookie
	}
	if args.Domain != "" {
		params["Domain"] = args.Domain
	}
	if args.URI != "" {
		params["URI"] = args.URI
	}
}

// DescribeBackendServers reports backend health per listener. A zero port
// lists every listener separately.
func (c *Client) DescribeBackendServers(ctx context.Context, loadBalancerID string, port int) ([]ListenerStatus, error) {
	params := aliyun.Params{
		"Action":         "DescribeBackendServers",
		"LoadBalancerId": loadBalancerID,
	}
	if port > 0 {
		params["ListenerPort"] = fmt.Sprintf("%d", port)
	}

	var resp struct {
		Listeners struct {
			Listener []ListenerStatus `json:"Listener"`
		} `json:"Listeners"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return nil, err
	}
	return resp.Listeners.Listener, nil
}

// BackendServerIDs lists the distinct backend server ids across listeners.
func (c *Client) BackendServerIDs(ctx context.Context, loadBalancerID string, port int) ([]string, error) {
	statuses, err := c.DescribeBackendServers(ctx, loadBalancerID, port)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, status := range statuses {
		for _, bs := range status.BackendServers.BackendServer {
			if !seen[bs.ServerID] {
				seen[bs.ServerID] = true
				ids = append(ids, bs.ServerID)
			}
		}
	}
	return ids, nil
}

// backendServersParam renders the pool as the JSON document the API expects
// for the BackendServers parameter.
func backendServersParam(servers []BackendServer) (string, error) {
	encoded, err := json.Marshal(servers)
	if err != nil {
		return "", fmt.Errorf("failed to encode backend servers: %w", err)
	}
	return string(encoded), nil
}

// AddBackendServers adds pool members to a balancer.
func (c *Client) AddBackendServers(ctx context.Context, loadBalancerID string, servers []BackendServer) error {
	encoded, err := backendServersParam(servers)
	if err != nil {
		return err
	}
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "AddBackendServers",
		"LoadBalancerId": loadBalancerID,
		"BackendServers": encoded,
	}, nil)
}

// AddBackendServerIDs adds pool members by instance id with default weights.
func (c *Client) AddBackendServerIDs(ctx context.Context, loadBalancerID string, serverIDs []string) error {
	return c.AddBackendServers(ctx, loadBalancerID, serversFromIDs(serverIDs))
}

// RemoveBackendServers removes pool members from a balancer. The API
// ignores weights on removal.
func (c *Client) RemoveBackendServers(ctx context.Context, loadBalancerID string, servers []BackendServer) error {
	// Strip weights so the encoded document carries only server ids.
	stripped := make([]BackendServer, 0, len(servers))
	for _, s := range servers {
		stripped = append(stripped, BackendServer{ServerID: s.ServerID})
	}
	encoded, err := backendServersParam(stripped)
	if err != nil {
		return err
	}
	return c.conn.Get(ctx, aliyun.Params{
		"Action":         "RemoveBackendServers",
		"LoadBalancerId": loadBalancerID,
		"BackendServers": encoded,
	}, nil)
}

// RemoveBackendServerIDs removes pool members by instance id.
func (c *Client) RemoveBackendServerIDs(ctx context.Context, loadBalancerID string, serverIDs []string) error {
	return c.RemoveBackendServers(ctx, loadBalancerID, serversFromIDs(serverIDs))
}

// DeregisterBackendServerIDs finds every balancer containing any of the
// servers and removes them, returning the ids of the modified balancers.
func (c *Client) DeregisterBackendServerIDs(ctx context.Context, serverIDs []string) ([]string, error) {
	membership := make(map[string][]string)
	for _, serverID := range serverIDs {
		statuses, err := c.DescribeLoadBalancers(ctx, serverID)
		if err != nil {
			return nil, err
		}
		for _, status := range statuses {
			membership[status.LoadBalancerID] = append(membership[status.LoadBalancerID], serverID)
		}
	}

	modified := make([]string, 0, len(membership))
	for lbID, ids := range membership {
		seen := make(map[string]bool)
		distinct := make([]string, 0, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				distinct = append(distinct, id)
			}
		}
		if err := c.RemoveBackendServerIDs(ctx, lbID, distinct); err != nil {
			return nil, err
		}
		modified = append(modified, lbID)
	}
	return modified, nil
}

func serversFromIDs(serverIDs []string) []BackendServer {
	servers := make([]BackendServer, 0, len(serverIDs))
	for _, id := range serverIDs {
		servers = append(servers, BackendServer{ServerID: id})
	}
	return servers
}
