package v1

import (
	xp_uuid "github.com/xpense-app/backend/internal/uuid"
)

type URIID struct {
	ID xp_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
