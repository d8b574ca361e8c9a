package booking

import "time"

// Project picks the last and next bookings relative to asOf.
// Last is the latest start strictly before asOf and next is the earliest start
// strictly after it. Rejected bookings are skipped. Either result may be nil.
func Project(bookings []*Booking, asOf time.Time) (last, next *Booking) {
	for _, b := range bookings {
		if b.Status == StatusRejected {
			continue
		}
		switch {
		case b.Start.Before(asOf):
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		case b.Start.After(asOf):
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
	}
	return last, next
}
