// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package ecs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/internal/log"
)

// defaultWaitInterval is the poll interval for the blocking convenience
// calls when the caller does not choose one.
const defaultWaitInterval = 30 * time.Second

// Client wraps a signed connection to the ECS endpoint.
type Client struct {
	conn *aliyun.Connection
}

// New builds an ECS client for a region. Options are passed through to the
// underlying connection.
func New(region string, opts ...aliyun.Option) (*Client, error) {
	conn, err := aliyun.New(region, aliyun.ServiceECS, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewFromConnection wraps an existing connection. The connection must target
// the ECS service.
func NewFromConnection(conn *aliyun.Connection) *Client {
	return &Client{conn: conn}
}

// Connection exposes the underlying connection for generic passthrough use.
func (c *Client) Connection() *aliyun.Connection { return c.conn }

// DescribeRegions lists all regions.
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

// RegionIDs lists all region ids.
func (c *Client) RegionIDs(ctx context.Context) ([]string, error) {
	regions, err := c.DescribeRegions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(regions))
	for _, r := range regions {
		ids = append(ids, r.RegionID)
	}
	return ids, nil
}

// DescribeZones lists the availability zones in the region.
func (c *Client) DescribeZones(ctx context.Context) ([]Zone, error) {
	var resp struct {
		Zones struct {
			Zone []Zone `json:"Zone"`
		} `json:"Zones"`
	}
	err := c.conn.Get(ctx, aliyun.Params{"Action": "DescribeZones"}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Zones.Zone, nil
}

// ZoneIDs lists the availability zone ids in the region.
func (c *Client) ZoneIDs(ctx context.Context) ([]string, error) {
	zones, err := c.DescribeZones(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(zones))
	for _, z := range zones {
		ids = append(ids, z.ZoneID)
	}
	return ids, nil
}

// DescribeClusters lists the cluster ids in the region.
func (c *Client) DescribeClusters(ctx context.Context) ([]string, error) {
	var resp struct {
		Clusters struct {
			Cluster []struct {
				ClusterID string `json:"ClusterId"`
			} `json:"Cluster"`
		} `json:"Clusters"`
	}
	err := c.conn.Get(ctx, aliyun.Params{"Action": "DescribeClusters"}, &resp)
	if err != nil {
		return nil, err
	}
	clusters := make([]string, 0, len(resp.Clusters.Cluster))
	for _, cl := range resp.Clusters.Cluster {
		clusters = append(clusters, cl.ClusterID)
	}
	return clusters, nil
}

// DescribeInstanceStatus lists the status of every instance in the region,
// optionally narrowed to one zone.
func (c *Client) DescribeInstanceStatus(ctx context.Context, zoneID string) ([]InstanceStatus, error) {
	params := aliyun.Params{"Action": "DescribeInstanceStatus"}
	if zoneID != "" {
		params["ZoneId"] = zoneID
	}

	var statuses []InstanceStatus
	err := c.conn.GetPaginated(ctx, params, func(body []byte) error {
		var page struct {
			InstanceStatuses struct {
				InstanceStatus []InstanceStatus `json:"InstanceStatus"`
			} `json:"InstanceStatuses"`
		}
		if err := aliyun.Decode(body, &page); err != nil {
			return err
		}
		statuses = append(statuses, page.InstanceStatuses.InstanceStatus...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// InstanceIDs lists the instance ids in the region, optionally narrowed to
// one zone.
func (c *Client) InstanceIDs(ctx context.Context, zoneID string) ([]string, error) {
	statuses, err := c.DescribeInstanceStatus(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.InstanceID)
	}
	return ids, nil
}

// DescribeInstance returns the full attribute document for one instance.
func (c *Client) DescribeInstance(ctx context.Context, instanceID string) (*Instance, error) {
	var instance Instance
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":     "DescribeInstanceAttribute",
		"InstanceId": instanceID,
	}, &instance)
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// StartInstance starts a stopped instance.
func (c *Client) StartInstance(ctx context.Context, instanceID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "StartInstance",
		"InstanceId": instanceID,
	}, nil)
}

// StopInstance stops a running instance.
func (c *Client) StopInstance(ctx context.Context, instanceID string, force bool) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "StopInstance",
		"InstanceId": instanceID,
		"ForceStop":  fmt.Sprintf("%t", force),
	}, nil)
}

// RebootInstance reboots a running instance.
func (c *Client) RebootInstance(ctx context.Context, instanceID string, force bool) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "RebootInstance",
		"InstanceId": instanceID,
		"ForceStop":  fmt.Sprintf("%t", force),
	}, nil)
}

// DeleteInstance deletes a stopped instance.
func (c *Client) DeleteInstance(ctx context.Context, instanceID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "DeleteInstance",
		"InstanceId": instanceID,
	}, nil)
}

// RenewInstance extends a PrePaid instance by a number of months. Valid
// periods are 1-9, 12, 24 and 36.
func (c *Client) RenewInstance(ctx context.Context, instanceID string, period int) error {
	if !validPeriods[period] {
		return fmt.Errorf("renewal needs a period of 1-9, 12, 24 or 36 months: %w",
			aliyun.ErrInvalidArgument)
	}
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "RenewInstance",
		"InstanceId": instanceID,
		"Period":     fmt.Sprintf("%d", period),
	}, nil)
}

// ReportExpiringInstances lists the PrePaid instances whose paid period runs
// out within the given number of days.
func (c *Client) ReportExpiringInstances(ctx context.Context, days int) ([]string, error) {
	ids, err := c.InstanceIDs(ctx, "")
	if err != nil {
		return nil, err
	}

	var expiring []string
	now := time.Now()
	for _, id := range ids {
		instance, err := c.DescribeInstance(ctx, id)
		if err != nil {
			return nil, err
		}
		if instance.InstanceChargeType != "PrePaid" {
			continue
		}
		if instance.ExpiredTime.Sub(now) <= time.Duration(days)*24*time.Hour {
			expiring = append(expiring, id)
		}
	}
	return expiring, nil
}

// ModifyInstanceOptions carries the mutable instance attributes. Zero-valued
// fields are left unchanged.
type ModifyInstanceOptions struct {
	InstanceName    string
	Password        string
	HostName        string
	SecurityGroupID string
	Description     string
}

// ModifyInstance updates the attributes set in opts. A password change takes
// effect at the next reboot.
func (c *Client) ModifyInstance(ctx context.Context, instanceID string, opts ModifyInstanceOptions) error {
	params := aliyun.Params{
		"Action":     "ModifyInstanceAttribute",
		"InstanceId": instanceID,
	}
	if opts.InstanceName != "" {
		params["InstanceName"] = opts.InstanceName
	}
	if opts.Password != "" {
		params["Password"] = opts.Password
	}
	if opts.HostName != "" {
		params["HostName"] = opts.HostName
	}
	if opts.SecurityGroupID != "" {
		params["SecurityGroupId"] = opts.SecurityGroupID
	}
	if opts.Description != "" {
		params["Description"] = opts.Description
	}
	return c.conn.Get(ctx, params, nil)
}

// ModifyInstanceSpec changes an instance's type or bandwidth limits. The
// action is restricted and may be rejected for some accounts.
func (c *Client) ModifyInstanceSpec(ctx context.Context, instanceID, instanceType string,
	bandwidthOut, bandwidthIn int) error {
	params := aliyun.Params{
		"Action":     "ModifyInstanceSpec",
		"InstanceId": instanceID,
	}
	if instanceType != "" {
		params["InstanceType"] = instanceType
	}
	if bandwidthOut > 0 {
		params["InternetMaxBandwidthOut"] = fmt.Sprintf("%d", bandwidthOut)
	}
	if bandwidthIn > 0 {
		params["InternetMaxBandwidthIn"] = fmt.Sprintf("%d", bandwidthIn)
	}
	return c.conn.Get(ctx, params, nil)
}

// ReplaceSystemDisk replaces an instance's system disk with a fresh one
// built from the image and returns the new disk id.
func (c *Client) ReplaceSystemDisk(ctx context.Context, instanceID, imageID string) (string, error) {
	var resp struct {
		DiskID string `json:"DiskId"`
	}
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":     "ReplaceSystemDisk",
		"InstanceId": instanceID,
		"ImageId":    imageID,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.DiskID, nil
}

// JoinSecurityGroup adds an instance to a security group.
func (c *Client) JoinSecurityGroup(ctx context.Context, instanceID, securityGroupID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":          "JoinSecurityGroup",
		"InstanceId":      instanceID,
		"SecurityGroupId": securityGroupID,
	}, nil)
}

// LeaveSecurityGroup removes an instance from a security group.
func (c *Client) LeaveSecurityGroup(ctx context.Context, instanceID, securityGroupID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":          "LeaveSecurityGroup",
		"InstanceId":      instanceID,
		"SecurityGroupId": securityGroupID,
	}, nil)
}

// CreateDiskOptions carries the optional CreateDisk attributes. Exactly one
// of Size or SnapshotID must be set; a snapshot determines the size.
type CreateDiskOptions struct {
	Name        string
	Description string
	Size        int
	SnapshotID  string
}

// CreateDisk creates an unattached disk in a zone and returns its id.
func (c *Client) CreateDisk(ctx context.Context, zoneID string, opts CreateDiskOptions) (string, error) {
	if opts.Size > 0 && opts.SnapshotID != "" {
		return "", fmt.Errorf("use size or snapshot id, not both: %w", aliyun.ErrInvalidArgument)
	}

	params := aliyun.Params{
		"Action": "CreateDisk",
		"ZoneId": zoneID,
	}
	if opts.Size > 0 {
		params["Size"] = fmt.Sprintf("%d", opts.Size)
	}
	if opts.SnapshotID != "" {
		params["SnapshotId"] = opts.SnapshotID
	}
	if opts.Name != "" {
		params["DiskName"] = opts.Name
	}
	if opts.Description != "" {
		params["Description"] = opts.Description
	}

	var resp struct {
		DiskID string `json:"DiskId"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return "", err
	}
	return resp.DiskID, nil
}

// AttachDisk attaches an existing disk to an instance. The instance must be
// stopped, otherwise the disk attaches at the next reboot.
func (c *Client) AttachDisk(ctx context.Context, instanceID, diskID, device string,
	deleteWithInstance bool) error {
	params := aliyun.Params{
		"Action":     "AttachDisk",
		"InstanceId": instanceID,
		"DiskId":     diskID,
	}
	if device != "" {
		params["Device"] = device
	}
	if deleteWithInstance {
		params["DeleteWithInstance"] = "true"
	}
	return c.conn.Get(ctx, params, nil)
}

// DetachDisk detaches a disk from an instance.
func (c *Client) DetachDisk(ctx context.Context, instanceID, diskID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "DetachDisk",
		"InstanceId": instanceID,
		"DiskId":     diskID,
	}, nil)
}

// AddDisk creates a disk in the instance's zone and attaches it, returning
// the new disk id.
func (c *Client) AddDisk(ctx context.Context, instanceID string, opts CreateDiskOptions,
	device string, deleteWithInstance bool) (string, error) {
	instance, err := c.DescribeInstance(ctx, instanceID)
	if err != nil {
		return "", err
	}
	diskID, err := c.CreateDisk(ctx, instance.ZoneID, opts)
	if err != nil {
		return "", err
	}
	if err := c.AttachDisk(ctx, instanceID, diskID, device, deleteWithInstance); err != nil {
		return "", err
	}
	return diskID, nil
}

// ResetDisk rolls a disk back to a snapshot.
func (c *Client) ResetDisk(ctx context.Context, diskID, snapshotID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "ResetDisk",
		"DiskId":     diskID,
		"SnapshotId": snapshotID,
	}, nil)
}

// ReInitDisk re-initializes a disk to its source image.
func (c *Client) ReInitDisk(ctx context.Context, diskID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action": "ReInitDisk",
		"DiskId": diskID,
	}, nil)
}

// DeleteDisk deletes a disk. A disk attached to a running instance is
// removed after the next reboot.
func (c *Client) DeleteDisk(ctx context.Context, diskID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action": "DeleteDisk",
		"DiskId": diskID,
	}, nil)
}

// ModifyDisk updates a disk's name, description or delete-with-instance
// behavior. Empty fields are left unchanged.
func (c *Client) ModifyDisk(ctx context.Context, diskID, name, description, deleteWithInstance string) error {
	params := aliyun.Params{
		"Action": "ModifyDiskAttribute",
		"DiskId": diskID,
	}
	if name != "" {
		params["DiskName"] = name
	}
	if description != "" {
		params["Description"] = description
	}
	if deleteWithInstance != "" {
		params["DeleteWithInstance"] = deleteWithInstance
	}
	return c.conn.Get(ctx, params, nil)
}

// DescribeDisksOptions narrows a DescribeDisks query. All fields are
// optional.
type DescribeDisksOptions struct {
	ZoneID     string
	DiskIDs    []string
	InstanceID string
}

// DescribeDisks lists the disks in the region matching opts.
func (c *Client) DescribeDisks(ctx context.Context, opts DescribeDisksOptions) ([]Disk, error) {
	params := aliyun.Params{"Action": "DescribeDisks"}
	if opts.ZoneID != "" {
		params["ZoneId"] = opts.ZoneID
	}
	if len(opts.DiskIDs) > 0 {
		params["DiskIds"] = strings.Join(opts.DiskIDs, ",")
	}
	if opts.InstanceID != "" {
		params["InstanceId"] = opts.InstanceID
	}

	var disks []Disk
	err := c.conn.GetPaginated(ctx, params, func(body []byte) error {
		var page struct {
			Disks struct {
				Disk []Disk `json:"Disk"`
			} `json:"Disks"`
		}
		if err := aliyun.Decode(body, &page); err != nil {
			return err
		}
		disks = append(disks, page.Disks.Disk...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return disks, nil
}

// DescribeInstanceTypes lists the instance types available.
func (c *Client) DescribeInstanceTypes(ctx context.Context) ([]InstanceType, error) {
	var resp struct {
		InstanceTypes struct {
			InstanceType []InstanceType `json:"InstanceType"`
		} `json:"InstanceTypes"`
	}
	err := c.conn.Get(ctx, aliyun.Params{"Action": "DescribeInstanceTypes"}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.InstanceTypes.InstanceType, nil
}

// CreateInstanceArgs are the CreateInstance request attributes. ImageID,
// InstanceType and SecurityGroupID are required. PrePaid instances must set
// Period to one of 1-9, 12, 24 or 36 months.
type CreateInstanceArgs struct {
	ImageID                 string
	InstanceType            string
	SecurityGroupID         string
	InstanceName            string
	InternetMaxBandwidthIn  int
	InternetMaxBandwidthOut int
	HostName                string
	Password                string
	SystemDiskCategory      string
	InternetChargeType      string
	InstanceChargeType      string
	Period                  int
	DataDisks               []DiskMapping
	Description             string
	ZoneID                  string
}

var validPeriods = map[int]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true,
	9: true, 12: true, 24: true, 36: true,
}

// CreateInstance creates an instance and returns its id. The instance is
// left in the Stopped state.
func (c *Client) CreateInstance(ctx context.Context, args CreateInstanceArgs) (string, error) {
	if args.ImageID == "" || args.InstanceType == "" || args.SecurityGroupID == "" {
		return "", fmt.Errorf("image id, instance type and security group id are required: %w",
			aliyun.ErrInvalidArgument)
	}

	params := aliyun.Params{
		"Action":          "CreateInstance",
		"ImageId":         args.ImageID,
		"InstanceType":    args.InstanceType,
		"SecurityGroupId": args.SecurityGroupID,
	}
	if args.InstanceName != "" {
		params["InstanceName"] = args.InstanceName
	}
	if args.InternetMaxBandwidthIn > 0 {
		params["InternetMaxBandwidthIn"] = fmt.Sprintf("%d", args.InternetMaxBandwidthIn)
	}
	if args.InternetMaxBandwidthOut > 0 {
		params["InternetMaxBandwidthOut"] = fmt.Sprintf("%d", args.InternetMaxBandwidthOut)
	}
	if args.HostName != "" {
		params["HostName"] = args.HostName
	}
	if args.Password != "" {
		params["Password"] = args.Password
	}
	if args.SystemDiskCategory != "" {
		params["SystemDisk.Category"] = args.SystemDiskCategory
	}
	if args.InternetChargeType != "" {
		params["InternetChargeType"] = args.InternetChargeType
	}

	switch args.InstanceChargeType {
	case "", "PostPaid":
		params["InstanceChargeType"] = "PostPaid"
	case "PrePaid":
		if !validPeriods[args.Period] {
			return "", fmt.Errorf("prepaid instances need a period of 1-9, 12, 24 or 36 months: %w",
				aliyun.ErrInvalidArgument)
		}
		params["InstanceChargeType"] = "PrePaid"
		params["Period"] = fmt.Sprintf("%d", args.Period)
	default:
		return "", fmt.Errorf("instance charge type must be PrePaid or PostPaid: %w",
			aliyun.ErrInvalidArgument)
	}

	for i, disk := range args.DataDisks {
		disk.params(i+1, params)
	}
	if args.Description != "" {
		params["Description"] = args.Description
	}
	if args.ZoneID != "" {
		params["ZoneId"] = args.ZoneID
	}

	var resp struct {
		InstanceID string `json:"InstanceId"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return "", err
	}
	return resp.InstanceID, nil
}

// AllocatePublicIP allocates and assigns a public address to an instance,
// returning the address.
func (c *Client) AllocatePublicIP(ctx context.Context, instanceID string) (string, error) {
	var resp struct {
		IPAddress string `json:"IpAddress"`
	}
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":     "AllocatePublicIpAddress",
		"InstanceId": instanceID,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.IPAddress, nil
}

// CreateAndStartInstanceArgs extends CreateInstanceArgs with the
// post-creation steps: extra security groups, public address assignment and
// waiting for the instance to run.
type CreateAndStartInstanceArgs struct {
	CreateInstanceArgs
	AdditionalSecurityGroupIDs []string
	AssignPublicIP             bool
	BlockTillReady             bool
	WaitInterval               time.Duration
}

// CreateAndStartInstance creates an instance, joins it to any additional
// security groups (an instance carries at most five in total), optionally
// assigns a public address, and starts it. With BlockTillReady set it waits
// until the instance reports Running; bound the wait with the context.
func (c *Client) CreateAndStartInstance(ctx context.Context, args CreateAndStartInstanceArgs) (string, error) {
	if len(args.AdditionalSecurityGroupIDs) > 4 {
		return "", fmt.Errorf("an instance can carry at most 5 security groups: %w",
			aliyun.ErrInvalidArgument)
	}

	instanceID, err := c.CreateInstance(ctx, args.CreateInstanceArgs)
	if err != nil {
		return "", err
	}

	for _, sg := range args.AdditionalSecurityGroupIDs {
		if err := c.JoinSecurityGroup(ctx, instanceID, sg); err != nil {
			return "", err
		}
	}

	if args.AssignPublicIP {
		if _, err := c.AllocatePublicIP(ctx, instanceID); err != nil {
			return "", err
		}
	}

	if err := c.StartInstance(ctx, instanceID); err != nil {
		return "", err
	}

	if args.BlockTillReady {
		interval := args.WaitInterval
		if interval <= 0 {
			interval = defaultWaitInterval
		}
		if err := c.WaitForInstanceStatus(ctx, instanceID, "Running", interval); err != nil {
			return "", err
		}
	}
	return instanceID, nil
}

// WaitForInstanceStatus polls until the instance reaches the wanted status
// or the context is done.
func (c *Client) WaitForInstanceStatus(ctx context.Context, instanceID, status string,
	interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		instance, err := c.DescribeInstance(ctx, instanceID)
		if err != nil {
			return err
		}
		if instance.Status == status {
			return nil
		}
		log.Debugf("waiting for instance: id=%s want=%s have=%s", instanceID, status, instance.Status)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DeleteSnapshot deletes a snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, instanceID, snapshotID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":     "DeleteSnapshot",
		"InstanceId": instanceID,
		"SnapshotId": snapshotID,
	}, nil)
}

// DescribeSnapshotsOptions narrows a DescribeSnapshots query. All fields are
// optional; SnapshotIDs may carry up to ten ids.
type DescribeSnapshotsOptions struct {
	InstanceID  string
	DiskID      string
	SnapshotIDs []string
}

// DescribeSnapshots lists snapshots matching opts.
func (c *Client) DescribeSnapshots(ctx context.Context, opts DescribeSnapshotsOptions) ([]Snapshot, error) {
	params := aliyun.Params{"Action": "DescribeSnapshots"}
	if opts.InstanceID != "" {
		params["InstanceId"] = opts.InstanceID
	}
	if opts.DiskID != "" {
		params["DiskId"] = opts.DiskID
	}
	if len(opts.SnapshotIDs) > 0 {
		quoted := make([]string, 0, len(opts.SnapshotIDs))
		for _, id := range opts.SnapshotIDs {
			quoted = append(quoted, fmt.Sprintf("%q", id))
		}
		params["SnapshotIds"] = "[" + strings.Join(quoted, ", ") + "]"
	}

	var snapshots []Snapshot
	err := c.conn.GetPaginated(ctx, params, func(body []byte) error {
		var page struct {
			Snapshots struct {
				Snapshot []Snapshot `json:"Snapshot"`
			} `json:"Snapshots"`
		}
		if err := aliyun.Decode(body, &page); err != nil {
			return err
		}
		snapshots = append(snapshots, page.Snapshots.Snapshot...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DescribeSnapshot returns one snapshot by id.
func (c *Client) DescribeSnapshot(ctx context.Context, snapshotID string) (*Snapshot, error) {
	snaps, err := c.DescribeSnapshots(ctx, DescribeSnapshotsOptions{SnapshotIDs: []string{snapshotID}})
	if err != nil {
		return nil, err
	}
	if len(snaps) != 1 {
		return nil, fmt.Errorf("snapshot %s not found: %w", snapshotID, aliyun.ErrInvalidArgument)
	}
	return &snaps[0], nil
}

// CreateSnapshot snapshots a disk and returns the snapshot id. The instance
// has to be running or stopped.
func (c *Client) CreateSnapshot(ctx context.Context, instanceID, diskID, name, description string) (string, error) {
	params := aliyun.Params{
		"Action":     "CreateSnapshot",
		"InstanceId": instanceID,
		"DiskId":     diskID,
	}
	if name != "" {
		params["SnapshotName"] = name
	}
	if description != "" {
		params["Description"] = description
	}

	var resp struct {
		SnapshotID string `json:"SnapshotId"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return "", err
	}
	return resp.SnapshotID, nil
}

// WaitForSnapshotReady polls until the snapshot reports full progress or the
// context is done.
func (c *Client) WaitForSnapshotReady(ctx context.Context, snapshotID string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snapshot, err := c.DescribeSnapshot(ctx, snapshotID)
		if err != nil {
			return err
		}
		if snapshot.Progress == "100%" {
			return nil
		}
		log.Debugf("waiting for snapshot: id=%s progress=%s", snapshotID, snapshot.Progress)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DescribeAutoSnapshotPolicy returns the account's auto-snapshot policy and
// the status of its last runs. The API misspells the status keys as
// "Excution"; only the wire struct follows that spelling.
func (c *Client) DescribeAutoSnapshotPolicy(ctx context.Context) (*AutoSnapshotPolicyStatus, error) {
	var resp struct {
		AutoSnapshotExcutionStatus struct {
			SystemDiskExcutionStatus string `json:"SystemDiskExcutionStatus"`
			DataDiskExcutionStatus   string `json:"DataDiskExcutionStatus"`
		} `json:"AutoSnapshotExcutionStatus"`
		AutoSnapshotPolicy struct {
			SystemDiskPolicyEnabled           string `json:"SystemDiskPolicyEnabled"`
			SystemDiskPolicyTimePeriod        int    `json:"SystemDiskPolicyTimePeriod,string"`
			SystemDiskPolicyRetentionDays     int    `json:"SystemDiskPolicyRetentionDays,string"`
			SystemDiskPolicyRetentionLastWeek string `json:"SystemDiskPolicyRetentionLastWeek"`
			DataDiskPolicyEnabled             string `json:"DataDiskPolicyEnabled"`
			DataDiskPolicyTimePeriod          int    `json:"DataDiskPolicyTimePeriod,string"`
			DataDiskPolicyRetentionDays       int    `json:"DataDiskPolicyRetentionDays,string"`
			DataDiskPolicyRetentionLastWeek   string `json:"DataDiskPolicyRetentionLastWeek"`
		} `json:"AutoSnapshotPolicy"`
	}
	err := c.conn.Get(ctx, aliyun.Params{"Action": "DescribeAutoSnapshotPolicy"}, &resp)
	if err != nil {
		return nil, err
	}

	p := resp.AutoSnapshotPolicy
	return &AutoSnapshotPolicyStatus{
		Status: AutoSnapshotExecutionStatus{
			SystemDiskExecutionStatus: resp.AutoSnapshotExcutionStatus.SystemDiskExcutionStatus,
			DataDiskExecutionStatus:   resp.AutoSnapshotExcutionStatus.DataDiskExcutionStatus,
		},
		Policy: AutoSnapshotPolicy{
			SystemDiskEnabled:           p.SystemDiskPolicyEnabled == "true",
			SystemDiskTimePeriod:        p.SystemDiskPolicyTimePeriod,
			SystemDiskRetentionDays:     p.SystemDiskPolicyRetentionDays,
			SystemDiskRetentionLastWeek: p.SystemDiskPolicyRetentionLastWeek == "true",
			DataDiskEnabled:             p.DataDiskPolicyEnabled == "true",
			DataDiskTimePeriod:          p.DataDiskPolicyTimePeriod,
			DataDiskRetentionDays:       p.DataDiskPolicyRetentionDays,
			DataDiskRetentionLastWeek:   p.DataDiskPolicyRetentionLastWeek == "true",
		},
	}, nil
}

// ModifyAutoSnapshotPolicy replaces the account's auto-snapshot policy for
// both disk kinds.
func (c *Client) ModifyAutoSnapshotPolicy(ctx context.Context, policy AutoSnapshotPolicy) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":                            "ModifyAutoSnapshotPolicy",
		"SystemDiskPolicyEnabled":           fmt.Sprintf("%t", policy.SystemDiskEnabled),
		"SystemDiskPolicyTimePeriod":        fmt.Sprintf("%d", policy.SystemDiskTimePeriod),
		"SystemDiskPolicyRetentionDays":     fmt.Sprintf("%d", policy.SystemDiskRetentionDays),
		"SystemDiskPolicyRetentionLastWeek": fmt.Sprintf("%t", policy.SystemDiskRetentionLastWeek),
		"DataDiskPolicyEnabled":             fmt.Sprintf("%t", policy.DataDiskEnabled),
		"DataDiskPolicyTimePeriod":          fmt.Sprintf("%d", policy.DataDiskTimePeriod),
		"DataDiskPolicyRetentionDays":       fmt.Sprintf("%d", policy.DataDiskRetentionDays),
		"DataDiskPolicyRetentionLastWeek":   fmt.Sprintf("%t", policy.DataDiskRetentionLastWeek),
	}, nil)
}

// DescribeImagesOptions narrows a DescribeImages query. All fields are
// optional.
type DescribeImagesOptions struct {
	ImageIDs     []string
	OwnerAliases []string
	SnapshotID   string
}

// DescribeImages lists images in the region matching opts.
func (c *Client) DescribeImages(ctx context.Context, opts DescribeImagesOptions) ([]Image, error) {
	params := aliyun.Params{"Action": "DescribeImages"}
	if len(opts.ImageIDs) > 0 {
		params["ImageId"] = strings.Join(opts.ImageIDs, ",")
	}
	if len(opts.OwnerAliases) > 0 {
		params["ImageOwnerAlias"] = strings.Join(opts.OwnerAliases, "+")
	}
	if opts.SnapshotID != "" {
		params["SnapshotId"] = opts.SnapshotID
	}

	var images []Image
	err := c.conn.GetPaginated(ctx, params, func(body []byte) error {
		var page struct {
			Images struct {
				Image []Image `json:"Image"`
			} `json:"Images"`
		}
		if err := aliyun.Decode(body, &page); err != nil {
			return err
		}
		images = append(images, page.Images.Image...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteImage deletes an image.
func (c *Client) DeleteImage(ctx context.Context, imageID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":  "DeleteImage",
		"ImageId": imageID,
	}, nil)
}

// CreateImage builds an image from a snapshot and returns the image id.
func (c *Client) CreateImage(ctx context.Context, snapshotID, version, description, osName string) (string, error) {
	params := aliyun.Params{
		"Action":     "CreateImage",
		"SnapshotId": snapshotID,
	}
	if version != "" {
		params["ImageVersion"] = version
	}
	if description != "" {
		params["Description"] = description
	}
	if osName != "" {
		params["OSName"] = osName
	}

	var resp struct {
		ImageID string `json:"ImageId"`
	}
	if err := c.conn.Get(ctx, params, &resp); err != nil {
		return "", err
	}
	return resp.ImageID, nil
}

// CreateImageFromInstance snapshots the instance's system disk, waits for
// the snapshot, and builds an image from it. Returns the snapshot id and the
// image id; bound the wait with the context.
func (c *Client) CreateImageFromInstance(ctx context.Context, instanceID, version, description, osName string,
	interval time.Duration) (string, string, error) {
	disks, err := c.DescribeDisks(ctx, DescribeDisksOptions{InstanceID: instanceID})
	if err != nil {
		return "", "", err
	}
	var systemDisk *Disk
	for i := range disks {
		if disks[i].Type == "system" {
			systemDisk = &disks[i]
			break
		}
	}
	if systemDisk == nil {
		return "", "", fmt.Errorf("no system disk on instance %s: %w", instanceID, aliyun.ErrInvalidArgument)
	}

	snapshotID, err := c.CreateSnapshot(ctx, instanceID, systemDisk.DiskID, "", description)
	if err != nil {
		return "", "", err
	}
	if interval <= 0 {
		interval = defaultWaitInterval
	}
	if err := c.WaitForSnapshotReady(ctx, snapshotID, interval); err != nil {
		return "", "", err
	}

	imageID, err := c.CreateImage(ctx, snapshotID, version, description, osName)
	if err != nil {
		return "", "", err
	}
	return snapshotID, imageID, nil
}

// DescribeSecurityGroups lists the security groups in the region.
func (c *Client) DescribeSecurityGroups(ctx context.Context) ([]SecurityGroupInfo, error) {
	var infos []SecurityGroupInfo
	err := c.conn.GetPaginated(ctx, aliyun.Params{"Action": "DescribeSecurityGroups"},
		func(body []byte) error {
			var page struct {
				SecurityGroups struct {
					SecurityGroup []SecurityGroupInfo `json:"SecurityGroup"`
				} `json:"SecurityGroups"`
			}
			if err := aliyun.Decode(body, &page); err != nil {
				return err
			}
			infos = append(infos, page.SecurityGroups.SecurityGroup...)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// SecurityGroupIDs lists the security group ids in the region.
func (c *Client) SecurityGroupIDs(ctx context.Context) ([]string, error) {
	infos, err := c.DescribeSecurityGroups(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.SecurityGroupID)
	}
	return ids, nil
}

// CreateSecurityGroup creates a security group and returns its id.
func (c *Client) CreateSecurityGroup(ctx context.Context, description string) (string, error) {
	var resp struct {
		SecurityGroupID string `json:"SecurityGroupId"`
	}
	err := c.conn.Get(ctx, aliyun.Params{
		"Action":      "CreateSecurityGroup",
		"Description": description,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.SecurityGroupID, nil
}

// DescribeSecurityGroup returns the full attribute document for a security
// group with the internet and intranet rules merged.
func (c *Client) DescribeSecurityGroup(ctx context.Context, securityGroupID string) (*SecurityGroup, error) {
	var group SecurityGroup
	var permissions []Permission

	for _, nicType := range []string{"internet", "intranet"} {
		var resp struct {
			RegionID        string `json:"RegionId"`
			SecurityGroupID string `json:"SecurityGroupId"`
			Description     string `json:"Description"`
			Permissions     struct {
				Permission []Permission `json:"Permission"`
			} `json:"Permissions"`
		}
		err := c.conn.Get(ctx, aliyun.Params{
			"Action":          "DescribeSecurityGroupAttribute",
			"SecurityGroupId": securityGroupID,
			"NicType":         nicType,
		}, &resp)
		if err != nil {
			return nil, err
		}

		group.RegionID = resp.RegionID
		group.SecurityGroupID = resp.SecurityGroupID
		group.Description = resp.Description
		permissions = append(permissions, resp.Permissions.Permission...)
	}

	group.Permissions = permissions
	return &group, nil
}

// DeleteSecurityGroup deletes a security group.
func (c *Client) DeleteSecurityGroup(ctx context.Context, securityGroupID string) error {
	return c.conn.Get(ctx, aliyun.Params{
		"Action":          "DeleteSecurityGroup",
		"SecurityGroupId": securityGroupID,
	}, nil)
}

// SecurityRule is one authorize/revoke request. IPProtocol is TCP, UDP,
// ICMP, GRE or ALL; PortRange is "1/65535" style for tcp/udp and "-1/-1"
// otherwise. Exactly one of SourceCidrIP or SourceGroupID should be set.
type SecurityRule struct {
	SecurityGroupID string
	IPProtocol      string
	PortRange       string
	SourceCidrIP    string
	SourceGroupID   string
	Policy          string
	NicType         string
}

func (r SecurityRule) params(action string) aliyun.Params {
	params := aliyun.Params{
		"Action":          action,
		"SecurityGroupId": r.SecurityGroupID,
		"IpProtocol":      r.IPProtocol,
		"PortRange":       r.PortRange,
	}
	if r.SourceCidrIP != "" {
		params["SourceCidrIp"] = r.SourceCidrIP
	}
	if r.SourceGroupID != "" {
		params["SourceGroupId"] = r.SourceGroupID
	}
	if r.Policy != "" {
		params["Policy"] = r.Policy
	}
	if r.NicType != "" {
		params["NicType"] = r.NicType
	}
	return params
}

// AuthorizeSecurityGroup adds a rule to a security group.
func (c *Client) AuthorizeSecurityGroup(ctx context.Context, rule SecurityRule) error {
	return c.conn.Get(ctx, rule.params("AuthorizeSecurityGroup"), nil)
}

// RevokeSecurityGroup removes a rule from a security group.
func (c *Client) RevokeSecurityGroup(ctx context.Context, rule SecurityRule) error {
	return c.conn.Get(ctx, rule.params("RevokeSecurityGroup"), nil)
}
