package services

import "agendabooking/internal/domain"

// privateEventNote replaces the event detail on anonymous invites.
const privateEventNote = "Private event"

// ProjectInviteForViewer applies the anonymity policy to one invite listing
// row. The invite's own anonymous flag is authoritative for this view,
// independent of the underlying event's flag: when set, only id, event id,
// status, sender, and a placeholder note survive; title, times, and
// description are suppressed.
func ProjectInviteForViewer(iv *domain.InviteWithEvent) *domain.InviteView {
	if iv.Anonymous {
		return &domain.InviteView{
			ID:       iv.ID,
			EventID:  iv.EventID,
			Status:   iv.Status,
			FromUser: iv.FromUser,
			Note:     privateEventNote,
		}
	}
	start := iv.StartTime
	end := iv.EndTime
	return &domain.InviteView{
		ID:          iv.ID,
		EventID:     iv.EventID,
		Status:      iv.Status,
		FromUser:    iv.FromUser,
		Title:       iv.Title,
		StartTime:   &start,
		EndTime:     &end,
		Description: iv.Description,
	}
}
