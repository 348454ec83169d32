package model

import "time"

// Resource is implemented by every record the console manages.
type Resource interface {
	ResourceID() string
	ResourceName() string
}

type VPCResource struct {
	Type  string `yaml:"type" json:"type"` // VM, Volume, Subnet, ...
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

type VPC struct {
	ID          string        `yaml:"id" json:"id"`
	Name        string        `yaml:"name" json:"name"`
	Status      string        `yaml:"status" json:"status"`
	Type        string        `yaml:"type" json:"type"` // Free, Paid
	Region      string        `yaml:"region" json:"region"`
	CreatedOn   time.Time     `yaml:"createdOn" json:"createdOn"`
	Description string        `yaml:"description" json:"description"`
	NetworkName string        `yaml:"networkName" json:"networkName"`
	Resources   []VPCResource `yaml:"resources" json:"resources"`
}

type Subnet struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	VPCName          string    `yaml:"vpcName" json:"vpcName"`
	Type             string    `yaml:"type" json:"type"` // Public, Private
	Status           string    `yaml:"status" json:"status"`
	CIDR             string    `yaml:"cidr" json:"cidr"`
	GatewayIP        string    `yaml:"gatewayIp" json:"gatewayIp"`
	CreatedOn        time.Time `yaml:"createdOn" json:"createdOn"`
	AvailabilityZone string    `yaml:"availabilityZone" json:"availabilityZone"`
	Description      string    `yaml:"description" json:"description"`
}

type Rule struct {
	ID             string `yaml:"id" json:"id"`
	Protocol       string `yaml:"protocol" json:"protocol"`   // TCP, UDP, ICMP, All
	PortRange      string `yaml:"portRange" json:"portRange"` // "22", "80-443", "All"
	RemoteIPPrefix string `yaml:"remoteIpPrefix" json:"remoteIpPrefix"`
	Description    string `yaml:"description" json:"description"`
}

type SecurityGroup struct {
	ID            string    `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	VPCName       string    `yaml:"vpcName" json:"vpcName"`
	CreatedOn     time.Time `yaml:"createdOn" json:"createdOn"`
	Status        string    `yaml:"status" json:"status"`
	Description   string    `yaml:"description" json:"description"`
	InboundRules  []Rule    `yaml:"inboundRules" json:"inboundRules"`
	OutboundRules []Rule    `yaml:"outboundRules" json:"outboundRules"`
}

type StaticIP struct {
	ID                 string    `yaml:"id" json:"id"`
	Name               string    `yaml:"name" json:"name"`
	IPAddress          string    `yaml:"ipAddress" json:"ipAddress"`
	VPCName            string    `yaml:"vpcName" json:"vpcName"`
	CreatedOn          time.Time `yaml:"createdOn" json:"createdOn"`
	Status             string    `yaml:"status" json:"status"`
	Description        string    `yaml:"description" json:"description"`
	AssociatedResource string    `yaml:"associatedResource" json:"associatedResource"`
}

type Volume struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	SizeGB           int       `yaml:"sizeGb" json:"sizeGb"`
	Type             string    `yaml:"type" json:"type"` // SSD, HDD
	Status           string    `yaml:"status" json:"status"`
	AttachedTo       string    `yaml:"attachedTo" json:"attachedTo"` // VM name, empty when detached
	VPCName          string    `yaml:"vpcName" json:"vpcName"`
	AvailabilityZone string    `yaml:"availabilityZone" json:"availabilityZone"`
	IOPS             int       `yaml:"iops" json:"iops"`
	CreatedOn        time.Time `yaml:"createdOn" json:"createdOn"`
	Description      string    `yaml:"description" json:"description"`
}

type Snapshot struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	VolumeID    string    `yaml:"volumeId" json:"volumeId"`
	VolumeName  string    `yaml:"volumeName" json:"volumeName"`
	SizeGB      int       `yaml:"sizeGb" json:"sizeGb"`
	Status      string    `yaml:"status" json:"status"`
	CreatedOn   time.Time `yaml:"createdOn" json:"createdOn"`
	Description string    `yaml:"description" json:"description"`
}

type Backup struct {
	ID            string    `yaml:"id" json:"id"`
	Name          string    `yaml:"name" json:"name"`
	VolumeID      string    `yaml:"volumeId" json:"volumeId"`
	VolumeName    string    `yaml:"volumeName" json:"volumeName"`
	Schedule      string    `yaml:"schedule" json:"schedule"` // Daily, Weekly, Manual
	RetentionDays int       `yaml:"retentionDays" json:"retentionDays"`
	Status        string    `yaml:"status" json:"status"`
	CreatedOn     time.Time `yaml:"createdOn" json:"createdOn"`
	Description   string    `yaml:"description" json:"description"`
}

// VMAttachment describes the VM a subnet is attached to.
type VMAttachment struct {
	VMID      string `yaml:"vmId" json:"vmId"`
	VMName    string `yaml:"vmName" json:"vmName"`
	IPAddress string `yaml:"ipAddress" json:"ipAddress"`
}

type SubnetConnection struct {
	SubnetID         string   `yaml:"subnetId" json:"subnetId"`
	ConnectedSubnets []string `yaml:"connectedSubnets" json:"connectedSubnets"`
}

func (v VPC) ResourceID() string   { return v.ID }
func (v VPC) ResourceName() string { return v.Name }

func (s Subnet) ResourceID() string   { return s.ID }
func (s Subnet) ResourceName() string { return s.Name }

func (sg SecurityGroup) ResourceID() string   { return sg.ID }
func (sg SecurityGroup) ResourceName() string { return sg.Name }

func (ip StaticIP) ResourceID() string   { return ip.ID }
func (ip StaticIP) ResourceName() string { return ip.Name }

func (v Volume) ResourceID() string   { return v.ID }
func (v Volume) ResourceName() string { return v.Name }

func (s Snapshot) ResourceID() string   { return s.ID }
func (s Snapshot) ResourceName() string { return s.Name }

func (b Backup) ResourceID() string   { return b.ID }
func (b Backup) ResourceName() string { return b.Name }

// ResourceCount returns the declared count of dependents of the given type.
func (v VPC) ResourceCount(resourceType string) int {
	n := 0
	for _, r := range v.Resources {
		if r.Type == resourceType {
			n += r.Count
		}
	}
	return n
}
