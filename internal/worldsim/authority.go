package worldsim

import (
	"go.uber.org/zap"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/buildmode/internal/buildmode"
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/logger"
	"github.com/Faultbox/buildmode/internal/placement"
)

// RequestPlace commits a placement directly. Requests carry no reply
// channel, so an unknown catalog id is logged and dropped.
func (w *World) RequestPlace(catalogID string, pose placement.Pose) {
	entry, ok := w.catalog.Find(catalogID)
	if !ok {
		logger.Warn("placement for unknown catalog id dropped", zap.String("id", catalogID))
		return
	}
	var parts []catalog.Part
	if err := copier.Copy(&parts, entry.Parts); err != nil {
		logger.Error("placement dropped", zap.String("id", catalogID), zap.Error(err))
		return
	}
	o := w.add(&Object{
		Kind:      KindPlaced,
		CatalogID: entry.ID,
		Name:      entry.Name,
		Pose:      pose,
		Parts:     parts,
		Owner:     w.user,
		Visible:   true,
	})
	logger.Info("object placed",
		zap.Uint32("ref", uint32(o.Ref)),
		zap.String("id", entry.ID))
}

// RequestDelete removes a placed object. Ownership is re-checked here;
// the authority does not trust the session's gate.
func (w *World) RequestDelete(ref buildmode.Ref) {
	o := w.objects[ref]
	if o == nil || o.Kind != KindPlaced || o.Owner != w.user {
		logger.Warn("deletion refused", zap.Uint32("ref", uint32(ref)))
		return
	}
	delete(w.objects, ref)
	logger.Info("object deleted", zap.Uint32("ref", uint32(ref)))
}
