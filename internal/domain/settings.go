package domain

import (
	"context"
	"time"
)

// SiteSettings is the admin-editable storefront configuration. It is
// stored as a single JSON document; loading shallow-merges the stored
// value over DefaultSiteSettings so that fields added in later
// deployments pick up their defaults instead of zero values.
type SiteSettings struct {
	StoreName      string `json:"storeName"`
	StoreNameAr    string `json:"storeNameAr"`
	Tagline        string `json:"tagline"`
	TaglineAr      string `json:"taglineAr"`
	Announcement   string `json:"announcement"`
	AnnouncementAr string `json:"announcementAr"`

	ContactPhone  string `json:"contactPhone"`
	WhatsAppPhone string `json:"whatsappPhone"`
	ContactEmail  string `json:"contactEmail"`

	FacebookURL  string `json:"facebookUrl"`
	InstagramURL string `json:"instagramUrl"`
	TikTokURL    string `json:"tiktokUrl"`

	Currency        string  `json:"currency"`
	ShippingFee     float64 `json:"shippingFee"`
	FreeShippingMin float64 `json:"freeShippingMin"` // 0 disables free shipping
	MaintenanceMode bool    `json:"maintenanceMode"`
	MetaTitle       string  `json:"metaTitle"`
	MetaDescription string  `json:"metaDescription"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultSiteSettings returns the compiled-in defaults used when no
// settings row exists yet or a stored field is absent.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		StoreName:   "Tabreed",
		StoreNameAr: "تبريد",
		Currency:    "SAR",
		ShippingFee: 50,
	}
}

type SettingsRepository interface {
	// GetRaw returns the stored settings document, or nil when none
	// has been saved yet.
	GetRaw(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}
