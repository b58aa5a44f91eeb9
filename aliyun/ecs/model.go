// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package ecs

import (
	"fmt"
	"time"
)

// Region is one provider region.
type Region struct {
	RegionID  string `json:"RegionId"`
	LocalName string `json:"LocalName"`
}

// Zone is an availability zone within a region, including which resource
// types and disk categories can be created in it.
type Zone struct {
	ZoneID                    string               `json:"ZoneId"`
	LocalName                 string               `json:"LocalName"`
	AvailableResourceCreation ResourceCreationList `json:"AvailableResourceCreation"`
	AvailableDiskCategories   DiskCategoryList     `json:"AvailableDiskCategories"`
}

// DiskSupported reports whether the zone can host disks of the category.
func (z Zone) DiskSupported(category string) bool {
	for _, c := range z.AvailableDiskCategories.DiskCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ResourceCreationSupported reports whether the zone can create resources of
// the type, e.g. "Instance" or "Disk".
func (z Zone) ResourceCreationSupported(resourceType string) bool {
	for _, r := range z.AvailableResourceCreation.ResourceTypes {
		if r == resourceType {
			return true
		}
	}
	return false
}

// ResourceCreationList wraps the resource type list the API nests under
// AvailableResourceCreation.
type ResourceCreationList struct {
	ResourceTypes []string `json:"ResourceTypes"`
}

// DiskCategoryList wraps the disk category list the API nests under
// AvailableDiskCategories.
type DiskCategoryList struct {
	DiskCategories []string `json:"DiskCategories"`
}

// InstanceStatus pairs an instance with its lifecycle status.
type InstanceStatus struct {
	InstanceID string `json:"InstanceId"`
	Status     string `json:"Status"`
}

// IPAddressSet wraps the address lists the API nests under PublicIpAddress
// and InnerIpAddress.
type IPAddressSet struct {
	IPAddress []string `json:"IpAddress"`
}

// SecurityGroupIDSet wraps the group id list the API nests under
// SecurityGroupIds.
type SecurityGroupIDSet struct {
	SecurityGroupID []string `json:"SecurityGroupId"`
}

// OperationLockSet wraps the lock reason list the API nests under
// OperationLocks.
type OperationLockSet struct {
	LockReason []string `json:"LockReason"`
}

// Instance is the full attribute document for one ECS instance.
type Instance struct {
	InstanceID              string             `json:"InstanceId"`
	InstanceName            string             `json:"InstanceName"`
	ImageID                 string             `json:"ImageId"`
	RegionID                string             `json:"RegionId"`
	InstanceType            string             `json:"InstanceType"`
	HostName                string             `json:"HostName"`
	Status                  string             `json:"Status"`
	SecurityGroupIDs        SecurityGroupIDSet `json:"SecurityGroupIds"`
	PublicIPAddress         IPAddressSet       `json:"PublicIpAddress"`
	InnerIPAddress          IPAddressSet       `json:"InnerIpAddress"`
	InternetChargeType      string             `json:"InternetChargeType"`
	InternetMaxBandwidthIn  int                `json:"InternetMaxBandwidthIn"`
	InternetMaxBandwidthOut int                `json:"InternetMaxBandwidthOut"`
	CreationTime            time.Time          `json:"CreationTime"`
	ExpiredTime             time.Time          `json:"ExpiredTime"`
	InstanceChargeType      string             `json:"InstanceChargeType"`
	Description             string             `json:"Description"`
	ClusterID               string             `json:"ClusterId"`
	OperationLocks          OperationLockSet   `json:"OperationLocks"`
	ZoneID                  string             `json:"ZoneId"`
}

// InstanceType is one of the machine shapes offered by the provider.
type InstanceType struct {
	InstanceTypeID string `json:"InstanceTypeId"`
	CPUCoreCount   int    `json:"CpuCoreCount"`
	MemorySize     int    `json:"MemorySize"`
}

// Disk is a block device, attached or detached. The time and boolean fields
// arrive as strings and may be empty when the disk has never been attached.
type Disk struct {
	DiskID             string `json:"DiskId"`
	Type               string `json:"Type"`
	Category           string `json:"Category"`
	Size               int    `json:"Size"`
	AttachedTime       string `json:"AttachedTime"`
	CreationTime       string `json:"CreationTime"`
	DeleteAutoSnapshot string `json:"DeleteAutoSnapshot"`
	DeleteWithInstance string `json:"DeleteWithInstance"`
	Description        string `json:"Description"`
	DetachedTime       string `json:"DetachedTime"`
	Device             string `json:"Device"`
	ImageID            string `json:"ImageId"`
	InstanceID         string `json:"InstanceId"`
	OperationLocks     struct {
		OperationLock []string `json:"OperationLock"`
	} `json:"OperationLocks"`
	Portable         string `json:"Portable"`
	ProductCode      string `json:"ProductCode"`
	SourceSnapshotID string `json:"SourceSnapshotId"`
	Status           string `json:"Status"`
	ZoneID           string `json:"ZoneId"`
}

// Snapshot is a point-in-time copy of a disk. Progress is reported by the
// API as a percentage string, e.g. "100%".
type Snapshot struct {
	SnapshotID     string    `json:"SnapshotId"`
	SnapshotName   string    `json:"SnapshotName"`
	Progress       string    `json:"Progress"`
	CreationTime   time.Time `json:"CreationTime"`
	Description    string    `json:"Description"`
	SourceDiskID   string    `json:"SourceDiskId"`
	SourceDiskType string    `json:"SourceDiskType"`
	SourceDiskSize int       `json:"SourceDiskSize,string"`
}

// Image is a machine image usable as an instance's system disk source.
type Image struct {
	ImageID         string `json:"ImageId"`
	ImageVersion    string `json:"ImageVersion"`
	ImageName       string `json:"ImageName"`
	Description     string `json:"Description"`
	Size            int    `json:"Size"`
	Architecture    string `json:"Architecture"`
	ImageOwnerAlias string `json:"ImageOwnerAlias"`
	OSName          string `json:"OSName"`
}

// SecurityGroupInfo is the summary row returned by DescribeSecurityGroups.
type SecurityGroupInfo struct {
	SecurityGroupID string `json:"SecurityGroupId"`
	Description     string `json:"Description"`
}

// Permission is a single security group rule.
type Permission struct {
	IPProtocol    string `json:"IpProtocol"`
	PortRange     string `json:"PortRange"`
	SourceCidrIP  string `json:"SourceCidrIp"`
	SourceGroupID string `json:"SourceGroupId"`
	Policy        string `json:"Policy"`
	NicType       string `json:"NicType"`
}

// SecurityGroup is the full attribute document for one security group,
// merging the internet and intranet facing rules.
type SecurityGroup struct {
	RegionID        string       `json:"RegionId"`
	SecurityGroupID string       `json:"SecurityGroupId"`
	Description     string       `json:"Description"`
	Permissions     []Permission `json:"-"`
}

// AutoSnapshotPolicy is the account-wide auto-snapshot schedule for system
// and data disks. The API carries the booleans and counts as strings; the
// client converts both ways.
type AutoSnapshotPolicy struct {
	SystemDiskEnabled           bool
	SystemDiskTimePeriod        int
	SystemDiskRetentionDays     int
	SystemDiskRetentionLastWeek bool
	DataDiskEnabled             bool
	DataDiskTimePeriod          int
	DataDiskRetentionDays       int
	DataDiskRetentionLastWeek   bool
}

// AutoSnapshotExecutionStatus reports the outcome of the last policy runs.
type AutoSnapshotExecutionStatus struct {
	SystemDiskExecutionStatus string
	DataDiskExecutionStatus   string
}

// AutoSnapshotPolicyStatus pairs the configured policy with its execution
// status.
type AutoSnapshotPolicyStatus struct {
	Status AutoSnapshotExecutionStatus
	Policy AutoSnapshotPolicy
}

// DiskMapping describes one additional data disk for CreateInstance. Exactly
// one of Size or SnapshotID should be set.
type DiskMapping struct {
	Category    string
	Size        int
	SnapshotID  string
	Name        string
	Description string
	Device      string
}

// params renders the mapping into the indexed DataDisk.n.* request keys. The
// API numbers data disks from 1.
func (d DiskMapping) params(n int, out map[string]string) {
	prefix := fmt.Sprintf("DataDisk.%d.", n)
	if d.Category != "" {
		out[prefix+"Category"] = d.Category
	}
	if d.Size > 0 {
		out[prefix+"Size"] = fmt.Sprintf("%d", d.Size)
	}
	if d.SnapshotID != "" {
		out[prefix+"SnapshotId"] = d.SnapshotID
	}
	if d.Name != "" {
		out[prefix+"DiskName"] = d.Name
	}
	if d.Description != "" {
		out[prefix+"Description"] = d.Description
	}
	if d.Device != "" {
		out[prefix+"Device"] = d.Device
	}
}
