// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package slb

// Region is one provider region offering SLB.
type Region struct {
	RegionID string `json:"RegionId"`
}

// LoadBalancerStatus is the summary row returned by DescribeLoadBalancers.
type LoadBalancerStatus struct {
	LoadBalancerID     string `json:"LoadBalancerId"`
	LoadBalancerName   string `json:"LoadBalancerName"`
	LoadBalancerStatus string `json:"LoadBalancerStatus"`
}

// BackendServer is one pool member. A zero weight means the API default.
type BackendServer struct {
	ServerID string `json:"ServerId"`
	Weight   int    `json:"Weight,omitempty"`
}

// ListenerPortSet wraps the port list the API nests under ListenerPorts.
type ListenerPortSet struct {
	ListenerPort []int `json:"ListenerPort"`
}

// BackendServerSet wraps the pool list the API nests under BackendServers.
type BackendServerSet struct {
	BackendServer []BackendServer `json:"BackendServer"`
}

// LoadBalancer is the full attribute document for one load balancer.
type LoadBalancer struct {
	LoadBalancerID     string           `json:"LoadBalancerId"`
	RegionID           string           `json:"RegionId"`
	LoadBalancerName   string           `json:"LoadBalancerName"`
	LoadBalancerStatus string           `json:"LoadBalancerStatus"`
	Address            string           `json:"Address"`
	AddressType        string           `json:"AddressType"`
	ListenerPorts      ListenerPortSet  `json:"ListenerPorts"`
	BackendServers     BackendServerSet `json:"BackendServers"`
}

// TCPListener is the attribute document for one TCP listener. The on/off
// switches arrive as the strings "on" and "off".
type TCPListener struct {
	LoadBalancerID     string `json:"-"`
	ListenerPort       int    `json:"ListenerPort"`
	BackendServerPort  int    `json:"BackendServerPort"`
	Status             string `json:"Status"`
	Scheduler          string `json:"Scheduler"`
	HealthCheck        string `json:"HealthCheck"`
	ConnectPort        int    `json:"ConnectPort"`
	PersistenceTimeout int    `json:"PersistenceTimeout"`
}

// HealthCheckOn reports whether health checking is enabled.
func (l TCPListener) HealthCheckOn() bool { return l.HealthCheck == "on" }

// HTTPListener is the attribute document for one HTTP listener.
type HTTPListener struct {
	LoadBalancerID    string `json:"-"`
	ListenerPort      int    `json:"ListenerPort"`
	BackendServerPort int    `json:"BackendServerPort"`
	Status            string `json:"Status"`
	Scheduler         string `json:"Scheduler"`
	HealthCheck       string `json:"HealthCheck"`
	XForwardedFor     string `json:"XForwardedFor"`
	StickySession     string `json:"StickySession"`
	StickySessionType string `json:"StickySessionapiType"`
	Cookie            string `json:"Cookie"`
	Domain            string `json:"Domain"`
	URI               string `json:"URI"`
}

// HealthCheckOn reports whether health checking is enabled.
func (l HTTPListener) HealthCheckOn() bool { return l.HealthCheck == "on" }

// BackendServerStatus pairs a pool member with its health state.
type BackendServerStatus struct {
	ServerID           string `json:"ServerId"`
	ServerHealthStatus string `json:"ServerHealthStatus"`
}

// ListenerStatus is the per-listener backend health report.
type ListenerStatus struct {
	ListenerPort   int `json:"ListenerPort"`
	BackendServers struct {
		BackendServer []BackendServerStatus `json:"BackendServer"`
	} `json:"BackendServers"`
}
