package services

import "testing"

func TestChangeFeed_SubscribePublish(t *testing.T) {
	feed := NewChangeFeed()

	var got []ChangeEvent
	unsubscribe := feed.Subscribe(TableGoals, func(e ChangeEvent) {
		got = append(got, e)
	})
	defer unsubscribe()

	feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionCreated, ID: "g1"})
	feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionCreated, ID: "f1"})

	if len(got) != 1 {
		t.Fatalf("goal subscriber saw %d events, want 1", len(got))
	}
	if got[0].ID != "g1" || got[0].Action != ActionCreated {
		t.Errorf("unexpected event %+v", got[0])
	}
}

func TestChangeFeed_WildcardSubscriber(t *testing.T) {
	feed := NewChangeFeed()

	var count int
	unsubscribe := feed.Subscribe(TableAll, func(e ChangeEvent) { count++ })
	defer unsubscribe()

	feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionCreated, ID: "g1"})
	feed.Publish(ChangeEvent{Table: TableSettings, Action: ActionUpdated, ID: "max_usage"})

	if count != 2 {
		t.Errorf("wildcard subscriber saw %d events, want 2", count)
	}
}

func TestChangeFeed_Unsubscribe(t *testing.T) {
	feed := NewChangeFeed()

	var count int
	unsubscribe := feed.Subscribe(TableGoals, func(e ChangeEvent) { count++ })

	feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionCreated, ID: "g1"})
	unsubscribe()
	unsubscribe() // idempotent
	feed.Publish(ChangeEvent{Table: TableGoals, Action: ActionDeleted, ID: "g1"})

	if count != 1 {
		t.Errorf("subscriber saw %d events after unsubscribe, want 1", count)
	}
}

func TestChangeFeed_MultipleSubscribersSameTable(t *testing.T) {
	feed := NewChangeFeed()

	var a, b int
	unsubA := feed.Subscribe(TableFamilies, func(e ChangeEvent) { a++ })
	unsubB := feed.Subscribe(TableFamilies, func(e ChangeEvent) { b++ })
	defer unsubA()
	defer unsubB()

	feed.Publish(ChangeEvent{Table: TableFamilies, Action: ActionUpdated, ID: "f1"})

	if a != 1 || b != 1 {
		t.Errorf("subscribers saw %d/%d events, want 1/1", a, b)
	}
}
