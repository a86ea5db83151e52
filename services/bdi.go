package services

import (
	"github.com/purge-dev/CliniCord/models"
)

// BDIInstrumentID identifies the built-in Beck Depression Inventory.
const BDIInstrumentID = "bdi"

const consultCaution = "Consult your doctor if your symptoms worsen."
const emergencyCaution = "Visit the ER if you are considering self-harm or worse."

// bdiQuestion builds one BDI item. Every item offers four statements worth
// 0 through 3 points, in order of increasing severity.
func bdiQuestion(prompt string, statements [4]string) models.Question {
	q := models.Question{Prompt: prompt}
	for i, s := range statements {
		q.Choices = append(q.Choices, models.Choice{Label: s, Points: i})
	}
	return q
}

// defaultBDIInstrument defines the built-in 21-item Beck Depression
// Inventory with its standard scoring bands (maximum total 63).
// Note: question text and bands are fixed clinical inputs, not tunables.
func defaultBDIInstrument() models.Instrument {
	return models.Instrument{
		ID:   BDIInstrumentID,
		Name: "Beck Depression Inventory",
		Questions: []models.Question{
			bdiQuestion("Sadness", [4]string{
				"I do not feel sad.",
				"I feel sad much of the time.",
				"I am sad all the time.",
				"I am so sad or unhappy that I can't stand it.",
			}),
			bdiQuestion("Pessimism", [4]string{
				"I am not discouraged about my future.",
				"I feel more discouraged about my future than I used to be.",
				"I do not expect things to work out for me.",
				"I feel my future is hopeless and will only get worse.",
			}),
			bdiQuestion("Past failure", [4]string{
				"I do not feel like a failure.",
				"I have failed more than I should have.",
				"As I look back, I see a lot of failures.",
				"I feel I am a complete failure as a person.",
			}),
			bdiQuestion("Loss of pleasure", [4]string{
				"I get as much pleasure as I ever did from the things I enjoy.",
				"I don't enjoy things as much as I used to.",
				"I get very little pleasure from the things I used to enjoy.",
				"I can't get any pleasure from the things I used to enjoy.",
			}),
			bdiQuestion("Guilty feelings", [4]string{
				"I don't feel particularly guilty.",
				"I feel guilty a good part of the time.",
				"I feel quite guilty most of the time.",
				"I feel guilty all of the time.",
			}),
			bdiQuestion("Punishment feelings", [4]string{
				"I don't feel I am being punished.",
				"I feel I may be punished.",
				"I expect to be punished.",
				"I feel I am being punished.",
			}),
			bdiQuestion("Self-dislike", [4]string{
				"I don't feel that I am any worse than anybody else.",
				"I am critical of myself for my weaknesses or mistakes.",
				"I blame myself all the time for my faults.",
				"I blame myself for everything bad that happens.",
			}),
			bdiQuestion("Self-criticalness", [4]string{
				"I don't criticize or blame myself more than usual.",
				"I am more critical of myself than I used to be.",
				"I criticize myself for all of my faults.",
				"I blame myself for everything that goes wrong.",
			}),
			bdiQuestion("Suicidal thoughts or wishes", [4]string{
				"I don't have any thoughts of killing myself.",
				"I have thoughts of killing myself, but I would not carry them out.",
				"I would like to kill myself.",
				"I would kill myself if I had the chance.",
			}),
			bdiQuestion("Crying", [4]string{
				"I don't cry any more than usual.",
				"I cry more now than I used to.",
				"I cry all the time now.",
				"I used to be able to cry, but now I can't cry even though I want to.",
			}),
			bdiQuestion("Agitation", [4]string{
				"I am no more restless or wound up than usual.",
				"I feel more restless or wound up than usual.",
				"I am so restless or agitated that it's hard to stay still.",
				"I am so restless or agitated that I have to keep moving or doing something.",
			}),
			bdiQuestion("Loss of interest", [4]string{
				"I have not lost interest in other people.",
				"I am less interested in other people than I used to be.",
				"I have lost most of my interest in other people.",
				"I have lost all of my interest in other people.",
			}),
			bdiQuestion("Indecisiveness", [4]string{
				"I make decisions about as well as ever.",
				"I put off making decisions more than I used to.",
				"I have greater difficulty in making decisions more than I used to.",
				"I can't make decisions at all anymore.",
			}),
			bdiQuestion("Worthlessness", [4]string{
				"I don't feel that I am worthless.",
				"I don't consider myself as worthwhile and useful as I used to.",
				"I feel more worthless as compared to others.",
				"I feel completely worthless.",
			}),
			bdiQuestion("Loss of energy", [4]string{
				"I have as much energy as ever.",
				"I have less energy than I used to have.",
				"I don't have enough energy to do much.",
				"I don't have enough energy to do anything.",
			}),
			bdiQuestion("Changes in sleeping pattern", [4]string{
				"I have not experienced any change in my sleeping pattern.",
				"I sleep somewhat more than usual.",
				"I sleep somewhat less than usual.",
				"I sleep a lot less than usual.",
			}),
			bdiQuestion("Irritability", [4]string{
				"I am no more irritable than usual.",
				"I am more irritable than usual.",
				"I am much more irritable than usual.",
				"I am irritable all the time.",
			}),
			bdiQuestion("Changes in appetite", [4]string{
				"My appetite is no different than usual.",
				"My appetite is not as good as it used to be.",
				"My appetite is much worse now.",
				"I have no appetite at all anymore.",
			}),
			bdiQuestion("Concentration difficulties", [4]string{
				"I can concentrate as well as ever.",
				"I can't concentrate as well as usual.",
				"It's hard to keep my mind on anything for very long.",
				"I find I can't concentrate on anything.",
			}),
			bdiQuestion("Tiredness or fatigue", [4]string{
				"I am no more tired or fatigued than usual.",
				"I get more tired or fatigued more easily than I used to.",
				"I am too tired or fatigued to do many of the things I used to do.",
				"I am too tired or fatigued to do most of the things I used to do.",
			}),
			bdiQuestion("Loss of interest in sex", [4]string{
				"I have not noticed any recent change in my interest in sex.",
				"I am less interested in sex than I used to be.",
				"I have lost interest in sex completely.",
				"I find sex completely unappealing.",
			}),
		},
		Bands: []models.ScoreBand{
			{
				Low: 0, High: 10, Category: "normal",
				Guidance: "Your responses suggest normal levels of stress. Ups and downs happen in life and shape who we are for the better. Keep going strong!",
				Caution:  consultCaution,
			},
			{
				Low: 11, High: 16, Category: "mild mood disturbance",
				Guidance: "Your responses suggest mild levels of mood disturbance.",
				Caution:  consultCaution,
			},
			{
				Low: 17, High: 20, Category: "borderline clinical depression",
				Guidance: "Your responses suggest borderline clinical depression. Consider making an appointment with your doctor to discuss ways going forward.",
				Caution:  consultCaution,
			},
			{
				Low: 21, High: 30, Category: "moderate depression",
				Guidance: "Your responses suggest moderate clinical depression. Consult a mental health professional soon to discuss ways going forward.",
				Caution:  consultCaution,
			},
			{
				Low: 31, High: 40, Category: "severe depression",
				Guidance: "Your responses suggest severe clinical depression. Consult a doctor or mental health professional soon to discuss ways going forward.",
				Caution:  emergencyCaution,
			},
			{
				Low: 41, High: 63, Category: "extreme depression",
				Guidance: "Your responses suggest extreme clinical depression. Please visit an urgent care mental health clinic as this is likely impacting your overall health.",
				Caution:  emergencyCaution,
			},
		},
	}
}
