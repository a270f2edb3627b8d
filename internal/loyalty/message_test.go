package loyalty

import (
	"testing"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

func TestMessageWithRewards(t *testing.T) {
	dual := DualTierPolicy{}
	eval := model.Evaluation{NewPoints: 7, Rewards: []model.RewardType{
		model.RewardAccessory, model.RewardBobine, model.RewardAccessory,
	}}
	got := Message(dual, 22, eval)
	want := "Félicitations ! Accessoire offert + Bobine Bambu Lab (blanc ou noir) refill PLA + Accessoire offert"
	if got != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", got, want)
	}

	single := SingleTierPolicy{}
	got = Message(single, 10, model.Evaluation{NewPoints: 5, Rewards: []model.RewardType{model.RewardBobine}})
	if got != "Félicitations ! Bobine gratuite" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessageWithoutRewards(t *testing.T) {
	dual := DualTierPolicy{}

	got := Message(dual, 1, model.Evaluation{NewPoints: 3})
	want := "Point ajouté ! 3 points - Plus que 4 pour Accessoire offert"
	if got != want {
		t.Fatalf("unexpected singular message:\n got %q\nwant %q", got, want)
	}

	got = Message(dual, 5, model.Evaluation{NewPoints: 8})
	want = "5 points ajoutés ! 8 points - Plus que 7 pour Bobine Bambu Lab (blanc ou noir) refill PLA"
	if got != want {
		t.Fatalf("unexpected plural message:\n got %q\nwant %q", got, want)
	}

	got = Message(SingleTierPolicy{}, 3, model.Evaluation{NewPoints: 5})
	want = "3 points ajoutés ! 5 points - Plus que 10 pour Bobine gratuite"
	if got != want {
		t.Fatalf("unexpected single-tier message:\n got %q\nwant %q", got, want)
	}
}
