package registry

import (
	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/utils"
)

// Catalog is the read-only set of selectable values for one wizard session.
type Catalog struct {
	Platforms  []data.Platform
	Networks   []data.Network
	UserPhones []data.UserPhone
	UserAppIDs []data.UserAppID
}

func (c *Catalog) PlatformByID(id string) (*data.Platform, bool) {
	for i := range c.Platforms {
		if c.Platforms[i].ID == id {
			p := c.Platforms[i]
			return &p, true
		}
	}
	return nil, false
}

func (c *Catalog) NetworkByID(id int64) (*data.Network, bool) {
	for i := range c.Networks {
		if c.Networks[i].ID == id {
			n := c.Networks[i]
			return &n, true
		}
	}
	return nil, false
}

func (c *Catalog) UserPhoneByID(id int64) (*data.UserPhone, bool) {
	for i := range c.UserPhones {
		if c.UserPhones[i].ID == id {
			p := c.UserPhones[i]
			return &p, true
		}
	}
	return nil, false
}

func (c *Catalog) UserAppIDByID(id int64) (*data.UserAppID, bool) {
	for i := range c.UserAppIDs {
		if c.UserAppIDs[i].ID == id {
			a := c.UserAppIDs[i]
			return &a, true
		}
	}
	return nil, false
}

// AccountsForPlatform returns the betting-account identifiers linked to the platform.
func (c *Catalog) AccountsForPlatform(platformID string) []data.UserAppID {
	return utils.FilterSlice(c.UserAppIDs, func(a data.UserAppID) bool {
		return a.App == platformID
	})
}

// PhonesForNetwork returns the saved phones tied to the network.
func (c *Catalog) PhonesForNetwork(networkID int64) []data.UserPhone {
	return utils.FilterSlice(c.UserPhones, func(p data.UserPhone) bool {
		return p.Network == networkID
	})
}
