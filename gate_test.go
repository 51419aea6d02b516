package goEntitle

import "testing"

func TestGateRouting(t *testing.T) {
	cases := []struct {
		name  string
		state SessionState
		want  Route
	}{
		{"not hydrated", SessionState{}, RouteLoading},
		{"fresh install", SessionState{Hydrated: true}, RouteOnboarding},
		{"onboarded anonymous", SessionState{Hydrated: true, Onboarded: true}, RouteForum},
		{"connected free", SessionState{Hydrated: true, Onboarded: true, Connected: true, Token: "t"}, RoutePayment},
		{"connected premium", SessionState{Hydrated: true, Onboarded: true, Connected: true, Premium: true, Token: "t"}, RouteChat},
	}

	for _, tc := range cases {
		if got := gate(tc.state); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestGateNeverChatWithoutConnection(t *testing.T) {
	// Even a perverse state with a lingering premium flag must not reach
	// the premium experience while disconnected.
	for _, onboarded := range []bool{false, true} {
		for _, premium := range []bool{false, true} {
			state := SessionState{
				Hydrated:  true,
				Onboarded: onboarded,
				Connected: false,
				Premium:   premium,
			}
			if got := gate(state); got == RouteChat {
				t.Fatalf("disconnected state %+v routed to chat", state)
			}
		}
	}
}

func TestRouteStrings(t *testing.T) {
	if RouteChat.String() != "chat" || Route(250).String() != "unknown" {
		t.Fatal("unexpected route strings")
	}
}
