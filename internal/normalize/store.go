package normalize

import (
	"fmt"
	"time"

	"gigmatrix/internal/domain"
)

// StoreRecord gig 数据库快照中的一条已确认预订
// DJ 姓名是全名或 "Unassigned"，由 domain.ByFullName 映射为短名
type StoreRecord struct {
	Date     time.Time `json:"date"`
	Resource string    `json:"resource"`
	Venue    string    `json:"venue"`
	Client   string    `json:"client"`
}

// FromStore 归一化 gig 数据库快照。每条记录一律是 primary 角色；
// 无法识别的姓名保留为 Unknown 并产生告警，让差异在对账报表中可见而不是凭空消失
func FromStore(recs []StoreRecord) ([]domain.BookingRecord, []string) {
	var out []domain.BookingRecord
	var warnings []string
	for _, rec := range recs {
		r := domain.ByFullName(rec.Resource)
		if r == domain.Unknown {
			warnings = append(warnings, fmt.Sprintf("unrecognized resource name %q in booking store on %s", rec.Resource, domain.DateKey(rec.Date)))
		}
		out = append(out, domain.BookingRecord{
			Date: rec.Date, Resource: r, Role: domain.RolePrimary, Source: domain.SourceGigDB,
		})
	}
	return out, warnings
}
