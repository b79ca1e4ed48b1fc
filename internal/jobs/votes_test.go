package jobs

import (
	"testing"

	"github.com/capitolwatch/capitolwatch-backend/internal/types"
)

func TestNormalizeVoteCast(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Yea", types.VoteCastYea},
		{"Aye", types.VoteCastYea},
		{"Yes", types.VoteCastYea},
		{"Nay", types.VoteCastNay},
		{"No", types.VoteCastNay},
		{"Present", types.VoteCastPresent},
		{"Not Voting", types.VoteCastNotVoting},
		{"Absent", types.VoteCastAbsent},
		{"", types.VoteCastUnknown},
		{"Paired", types.VoteCastUnknown},
		{"yea", types.VoteCastUnknown},
	}
	for _, tc := range cases {
		if got := NormalizeVoteCast(tc.in); got != tc.want {
			t.Fatalf("NormalizeVoteCast(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
