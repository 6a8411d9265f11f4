package cloudconnect

import (
	"encoding/xml"
	"time"

	"github.com/s0up4200/restvc/hypermedia"
)

// Ref is an entity reference returned by listing endpoints. References
// carry enough to identify an entity and the links to navigate to it.
type Ref struct {
	XMLName xml.Name            `xml:"Ref"`
	UID     string              `xml:"UID,attr,omitempty"`
	Name    string              `xml:"Name,attr"`
	Type    string              `xml:"Type,attr"`
	Href    string              `xml:"Href,attr"`
	Links   hypermedia.LinkList `xml:"Links"`
}

// EntityName implements hypermedia.Named
func (r Ref) EntityName() string { return r.Name }

// EntityType implements hypermedia.Named
func (r Ref) EntityType() string { return r.Type }

// RefList is the reference collection wrapper used by listing endpoints.
type RefList struct {
	XMLName xml.Name `xml:"EntityReferences"`
	Refs    []Ref    `xml:"Ref"`
}

// Reference type tags used for named-entity resolution.
const (
	TypeTenantRef       = "CloudTenantReference"
	TypeHardwarePlanRef = "HardwarePlanReference"
	TypeRepositoryRef   = "RepositoryReference"
	TypeBackupServerRef = "BackupServerReference"
)

// Tenant is a cloud tenant account on the backup platform.
type Tenant struct {
	XMLName             xml.Name            `xml:"CloudTenant"`
	UID                 string              `xml:"UID,attr,omitempty"`
	Name                string              `xml:"Name"`
	Description         string              `xml:"Description,omitempty"`
	Enabled             bool                `xml:"Enabled"`
	LeaseExpirationDate *time.Time          `xml:"LeaseExpirationDate,omitempty"`
	LastActive          *time.Time          `xml:"LastActive,omitempty"`
	Links               hypermedia.LinkList `xml:"Links"`
}

// CreateTenantSpec is the request body for tenant creation.
type CreateTenantSpec struct {
	XMLName             xml.Name   `xml:"CreateCloudTenantSpec"`
	Name                string     `xml:"Name"`
	Description         string     `xml:"Description,omitempty"`
	Password            string     `xml:"Password"`
	Enabled             bool       `xml:"Enabled"`
	LeaseExpirationDate *time.Time `xml:"LeaseExpirationDate,omitempty"`
}

// BackupResource is a tenant's quota on a cloud backup repository.
type BackupResource struct {
	XMLName       xml.Name            `xml:"CloudTenantResource"`
	ID            string              `xml:"Id,omitempty"`
	Name          string              `xml:"Name"`
	RepositoryUID string              `xml:"RepositoryUid,omitempty"`
	QuotaMB       int64               `xml:"QuotaMb"`
	Links         hypermedia.LinkList `xml:"Links"`
}

// BackupResourceList is the collection wrapper for tenant backup resources.
type BackupResourceList struct {
	XMLName   xml.Name         `xml:"CloudTenantResources"`
	Resources []BackupResource `xml:"CloudTenantResource"`
}

// ReplicaResource is a tenant's replication allocation on a hardware plan.
type ReplicaResource struct {
	XMLName         xml.Name            `xml:"CloudTenantReplicaResource"`
	HardwarePlanUID string              `xml:"HardwarePlanUid"`
	Links           hypermedia.LinkList `xml:"Links"`
}

// HardwarePlan describes compute and storage capacity offered to tenants
// for replication.
type HardwarePlan struct {
	XMLName   xml.Name            `xml:"HardwarePlan"`
	UID       string              `xml:"UID,attr,omitempty"`
	Name      string              `xml:"Name"`
	CPUMhz    int64               `xml:"ProcessorQuotaMhz,omitempty"`
	MemoryMB  int64               `xml:"MemoryQuotaMb,omitempty"`
	StorageGB int64               `xml:"StorageQuotaGb,omitempty"`
	Links     hypermedia.LinkList `xml:"Links"`
}

// Repository is a backup repository visible to the management API.
type Repository struct {
	XMLName    xml.Name            `xml:"Repository"`
	UID        string              `xml:"UID,attr,omitempty"`
	Name       string              `xml:"Name"`
	Kind       string              `xml:"Kind,omitempty"`
	CapacityGB int64               `xml:"Capacity,omitempty"`
	FreeGB     int64               `xml:"FreeSpace,omitempty"`
	Links      hypermedia.LinkList `xml:"Links"`
}

// VLANConfiguration is a VLAN range reserved for tenant networking.
type VLANConfiguration struct {
	XMLName      xml.Name            `xml:"VlanConfiguration"`
	Name         string              `xml:"Name,omitempty"`
	PlatformType string              `xml:"PlatformType,omitempty"`
	FirstVLAN    int                 `xml:"FirstVlanId"`
	LastVLAN     int                 `xml:"LastVlanId"`
	Links        hypermedia.LinkList `xml:"Links"`
}

// VLANConfigurationList is the collection wrapper for VLAN configurations.
type VLANConfigurationList struct {
	XMLName xml.Name            `xml:"VlanConfigurations"`
	VLANs   []VLANConfiguration `xml:"VlanConfiguration"`
}

// BackupServer is a managed backup server registered with the API.
type BackupServer struct {
	XMLName     xml.Name            `xml:"BackupServer"`
	UID         string              `xml:"UID,attr,omitempty"`
	Name        string              `xml:"Name"`
	Description string              `xml:"Description,omitempty"`
	Port        int                 `xml:"Port,omitempty"`
	Version     string              `xml:"Version,omitempty"`
	Links       hypermedia.LinkList `xml:"Links"`
}
