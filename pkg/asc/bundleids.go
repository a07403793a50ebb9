package asc

import (
	"context"
	"errors"
)

// Platform identifies the platform a bundle ID is registered for.
type Platform string

// Bundle ID platforms.
const (
	PlatformIOS       Platform = "IOS"
	PlatformMacOS     Platform = "MAC_OS"
	PlatformUniversal Platform = "UNIVERSAL"
)

// BundleIDAttributes are the attributes of a registered bundle ID.
type BundleIDAttributes struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Platform   Platform `json:"platform"`
	SeedID     string   `json:"seedId"`
}

// BundleID is a registered bundle ID resource.
type BundleID struct {
	ID         string             `json:"id"`
	Attributes BundleIDAttributes `json:"attributes"`
}

// ProfileAttributes are the attributes of a provisioning profile.
type ProfileAttributes struct {
	Name           string `json:"name"`
	Platform       string `json:"platform"`
	ProfileType    string `json:"profileType"`
	ProfileState   string `json:"profileState"`
	ProfileContent string `json:"profileContent"`
	UUID           string `json:"uuid"`
	CreatedDate    string `json:"createdDate"`
	ExpirationDate string `json:"expirationDate"`
}

// Profile is a provisioning profile resource.
type Profile struct {
	ID         string            `json:"id"`
	Attributes ProfileAttributes `json:"attributes"`
}

// BundleIDCapabilityAttributes are the attributes of an enabled capability.
type BundleIDCapabilityAttributes struct {
	CapabilityType string `json:"capabilityType"`
}

// BundleIDCapability is a capability enabled on a bundle ID.
type BundleIDCapability struct {
	ID         string                       `json:"id"`
	Attributes BundleIDCapabilityAttributes `json:"attributes"`
}

type bundleIDCreateAttributes struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Platform   Platform `json:"platform"`
}

type bundleIDCreateData struct {
	Attributes bundleIDCreateAttributes `json:"attributes"`
	Type       string                   `json:"type"`
}

type bundleIDCreateRequest struct {
	Data bundleIDCreateData `json:"data"`
}

type capabilityRelationshipData struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type capabilityRelationshipBundleID struct {
	Data capabilityRelationshipData `json:"data"`
}

type capabilityRelationships struct {
	BundleID capabilityRelationshipBundleID `json:"bundleId"`
}

type capabilityCreateData struct {
	Attributes    BundleIDCapabilityAttributes `json:"attributes"`
	Relationships capabilityRelationships      `json:"relationships"`
	Type          string                       `json:"type"`
}

type capabilityCreateRequest struct {
	Data capabilityCreateData `json:"data"`
}

// RegisterBundleID registers a new bundle ID. Registration is a mutating
// call and is never retried automatically.
func (c *Client) RegisterBundleID(ctx context.Context, identifier, name string, platform Platform) (*BundleID, error) {
	if identifier == "" {
		return nil, errors.New("identifier cannot be empty")
	}
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if platform == "" {
		platform = PlatformUniversal
	}

	body := bundleIDCreateRequest{
		Data: bundleIDCreateData{
			Attributes: bundleIDCreateAttributes{
				Identifier: identifier,
				Name:       name,
				Platform:   platform,
			},
			Type: "bundleIds",
		},
	}

	var doc document[BundleID]
	if err := c.post(ctx, "/bundleIds", body, &doc); err != nil {
		return nil, err
	}
	return &doc.Data, nil
}

// BundleIDs returns a pager over all registered bundle IDs.
func (c *Client) BundleIDs() *Pager[BundleID] {
	return newPager[BundleID](c, "/bundleIds", nil)
}

// BundleID fetches a single bundle ID by resource ID.
func (c *Client) BundleID(ctx context.Context, id string) (*BundleID, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty")
	}

	var doc document[BundleID]
	if err := c.get(ctx, "/bundleIds/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc.Data, nil
}

// DeleteBundleID deletes a bundle ID registration.
func (c *Client) DeleteBundleID(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	return c.delete(ctx, "/bundleIds/"+id)
}

// BundleIDProfiles returns a pager over the provisioning profiles attached
// to a bundle ID.
func (c *Client) BundleIDProfiles(id string) *Pager[Profile] {
	return newPager[Profile](c, "/bundleIds/"+id+"/profiles", nil)
}

// BundleIDCapabilities returns a pager over the capabilities enabled on a
// bundle ID.
func (c *Client) BundleIDCapabilities(id string) *Pager[BundleIDCapability] {
	return newPager[BundleIDCapability](c, "/bundleIds/"+id+"/bundleIdCapabilities", nil)
}

// EnableBundleIDCapability enables a capability on a bundle ID.
func (c *Client) EnableBundleIDCapability(ctx context.Context, id, capabilityType string) (*BundleIDCapability, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty")
	}
	if capabilityType == "" {
		return nil, errors.New("capabilityType cannot be empty")
	}

	body := capabilityCreateRequest{
		Data: capabilityCreateData{
			Attributes: BundleIDCapabilityAttributes{CapabilityType: capabilityType},
			Relationships: capabilityRelationships{
				BundleID: capabilityRelationshipBundleID{
					Data: capabilityRelationshipData{ID: id, Type: "bundleIds"},
				},
			},
			Type: "bundleIdCapabilities",
		},
	}

	var doc document[BundleIDCapability]
	if err := c.post(ctx, "/bundleIdCapabilities", body, &doc); err != nil {
		return nil, err
	}
	return &doc.Data, nil
}
