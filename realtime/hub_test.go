package realtime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestHub_SubscribeFiltersByType(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	var all, deletes []Event
	cancelAll, err := hub.Subscribe("content_sections", EventAll, func(e Event) {
		mu.Lock()
		all = append(all, e)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer cancelAll()

	cancelDeletes, err := hub.Subscribe("content_sections", EventDelete, func(e Event) {
		mu.Lock()
		deletes = append(deletes, e)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer cancelDeletes()

	hub.Publish(Event{Topic: "content_sections", Type: EventInsert})
	hub.Publish(Event{Topic: "content_sections", Type: EventDelete})
	hub.Publish(Event{Topic: "projects", Type: EventUpdate})
	hub.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(all) != 2 {
		t.Errorf("wildcard subscriber got %d events, want 2", len(all))
	}
	if len(deletes) != 1 || deletes[0].Type != EventDelete {
		t.Errorf("delete subscriber got %v, want one delete", deletes)
	}
	if all[0].At.IsZero() {
		t.Error("Publish() should stamp the event time")
	}
}

func TestHub_CancelIsPerSubscription(t *testing.T) {
	hub := NewHub()

	counts := make([]int, 2)
	subscribe := func(i int) func() {
		cancel, err := hub.Subscribe("reviews", EventAll, func(Event) { counts[i]++ })
		if err != nil {
			t.Fatalf("Subscribe() error = %v", err)
		}
		return cancel
	}

	cancelFirst := subscribe(0)
	cancelSecond := subscribe(1)
	defer cancelSecond()

	cancelFirst()
	cancelFirst() // second call is a no-op

	hub.Publish(Event{Topic: "reviews", Type: EventUpdate})
	hub.Wait()

	if counts[0] != 0 {
		t.Errorf("cancelled subscriber received %d events", counts[0])
	}
	if counts[1] != 1 {
		t.Errorf("remaining subscriber received %d events, want 1", counts[1])
	}
}

func TestHub_DeliversInPublishOrder(t *testing.T) {
	hub := NewHub()

	var got []string
	cancel, err := hub.Subscribe("orders", EventAll, func(e Event) { got = append(got, e.RecordID) })
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer cancel()

	want := []string{"1", "2", "3", "4", "5"}
	for _, id := range want {
		hub.Publish(Event{Topic: "orders", Type: EventInsert, RecordID: id})
	}
	hub.Wait()

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("delivery order = %v, want %v", got, want)
	}
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	const workers = 16
	var delivered atomic.Int64
	done := make(chan struct{})

	var cancelMu sync.Mutex
	var cancels []func()
	defer func() {
		cancelMu.Lock()
		defer cancelMu.Unlock()
		for _, cancel := range cancels {
			cancel()
		}
	}()

	go func() {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(2)
			topic := fmt.Sprintf("topic_%d", i)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					cancel, err := hub.Subscribe(fmt.Sprintf("%s_%d", topic, j), EventAll, func(Event) { delivered.Add(1) })
					if err != nil {
						t.Errorf("Subscribe() error = %v", err)
						return
					}
					cancelMu.Lock()
					cancels = append(cancels, cancel)
					cancelMu.Unlock()
					hub.Publish(Event{Topic: fmt.Sprintf("%s_%d", topic, j), Type: EventInsert})
				}
			}()
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					hub.Publish(Event{Topic: fmt.Sprintf("%s_%d", topic, j), Type: EventUpdate})
				}
			}()
		}
		wg.Wait()
		hub.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent Subscribe and Publish did not complete")
	}

	if delivered.Load() < workers*50 {
		t.Errorf("delivered %d events, want at least %d", delivered.Load(), workers*50)
	}
}

func TestParseNotification(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
		wantErr bool
	}{
		{"insert", `{"table":"content_sections","type":"INSERT","id":"42"}`, Event{Topic: "content_sections", Type: EventInsert, RecordID: "42"}, false},
		{"delete", `{"table":"projects","type":"delete"}`, Event{Topic: "projects", Type: EventDelete}, false},
		{"truncate maps to wildcard", `{"table":"reviews","type":"TRUNCATE"}`, Event{Topic: "reviews", Type: EventAll}, false},
		{"missing table", `{"type":"insert"}`, Event{}, true},
		{"not json", `content_sections`, Event{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNotification(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNotification() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Topic != tt.want.Topic || got.Type != tt.want.Type || got.RecordID != tt.want.RecordID {
				t.Errorf("ParseNotification() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
