package domain

import (
	"testing"
	"time"
)

func TestPlaceOpenAt(t *testing.T) {
	museum := Place{
		ID:   1,
		Name: "Museum",
		Hours: []OpeningSpan{
			{Weekday: time.Monday, OpenMinute: 480, CloseMinute: 960},
			{Weekday: time.Tuesday, OpenMinute: 480, CloseMinute: 960},
		},
	}

	if !museum.OpenAt(time.Monday, 480) {
		t.Error("arrival exactly at opening should be admitted")
	}
	if museum.OpenAt(time.Monday, 960) {
		t.Error("arrival exactly at closing should be rejected")
	}
	if museum.OpenAt(time.Monday, 470) {
		t.Error("arrival before opening should be rejected")
	}
	if museum.OpenAt(time.Sunday, 600) {
		t.Error("weekday without hours listed should be closed")
	}
}

func TestPlaceOpenAtNoHours(t *testing.T) {
	// a place with no opening-hours data is always open
	park := Place{ID: 2, Name: "Park"}

	if !park.OpenAt(time.Sunday, 0) {
		t.Error("place without hours should admit any arrival")
	}
}
