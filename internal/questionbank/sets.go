package questionbank

import "level-assessment-service/internal/domain"

var sets = map[domain.Variant][]domain.Question{
	domain.VariantGeneral: {
		{ID: 0, Section: "A1", Prompt: "Choose the correct word: \"She ___ a student.\"", Options: []string{"am", "is", "are", "be"}, CorrectIndex: 1},
		{ID: 1, Section: "A1", Prompt: "What is the plural of \"child\"?", Options: []string{"childs", "childes", "children", "childrens"}, CorrectIndex: 2},
		{ID: 2, Section: "A2", Prompt: "Choose the correct past form: \"Yesterday I ___ to the cinema.\"", Options: []string{"go", "goes", "going", "went"}, CorrectIndex: 3},
		{ID: 3, Section: "A2", Prompt: "\"There isn't ___ milk left in the fridge.\"", Options: []string{"any", "some", "many", "a"}, CorrectIndex: 0},
		{ID: 4, Section: "B1", Prompt: "\"If it rains tomorrow, we ___ at home.\"", Options: []string{"stayed", "will stay", "would stay", "stay will"}, CorrectIndex: 1},
		{ID: 5, Section: "B1", Prompt: "\"I have lived here ___ 2015.\"", Options: []string{"for", "during", "since", "from"}, CorrectIndex: 2},
		{ID: 6, Section: "B2", Prompt: "\"By the time we arrived, the film ___.\"", Options: []string{"had already started", "has already started", "already starts", "was already start"}, CorrectIndex: 0},
		{ID: 7, Section: "B2", Prompt: "Choose the closest meaning of \"reluctant\".", Options: []string{"eager", "unwilling", "careless", "curious"}, CorrectIndex: 1},
		{ID: 8, Section: "C1", Prompt: "\"Hardly ___ the house when it started to pour.\"", Options: []string{"I had left", "had I left", "I left", "did I leave"}, CorrectIndex: 1},
		{ID: 9, Section: "C1", Prompt: "Choose the word that best completes: \"Her argument was so ___ that nobody could refute it.\"", Options: []string{"cogent", "tentative", "frivolous", "verbose"}, CorrectIndex: 0},
	},
	domain.VariantIELTS: {
		{ID: 0, Section: "Vocabulary", Prompt: "Choose the word closest in meaning to \"substantial\".", Options: []string{"minor", "considerable", "temporary", "obscure"}, CorrectIndex: 1},
		{ID: 1, Section: "Vocabulary", Prompt: "\"The government plans to ___ the new policy next year.\"", Options: []string{"implement", "implicate", "imply", "impose on"}, CorrectIndex: 0},
		{ID: 2, Section: "Vocabulary", Prompt: "Which word means \"to make something less severe\"?", Options: []string{"aggravate", "mitigate", "stimulate", "dominate"}, CorrectIndex: 1},
		{ID: 3, Section: "Reading", Prompt: "\"Urban green spaces reduce heat and improve residents' wellbeing.\" What is the main claim?", Options: []string{"Cities are too hot", "Parks benefit city dwellers", "Residents dislike parks", "Heat improves wellbeing"}, CorrectIndex: 1},
		{ID: 4, Section: "Reading", Prompt: "\"Despite early scepticism, the vaccine proved highly effective.\" The early attitude was:", Options: []string{"enthusiastic", "indifferent", "doubtful", "hostile"}, CorrectIndex: 2},
		{ID: 5, Section: "Reading", Prompt: "\"The findings were inconclusive.\" This means the results:", Options: []string{"proved the theory", "were not decisive", "were published late", "were falsified"}, CorrectIndex: 1},
		{ID: 6, Section: "Grammar", Prompt: "\"Had the council acted sooner, the flooding ___ avoided.\"", Options: []string{"could be", "could have been", "can have been", "could been"}, CorrectIndex: 1},
		{ID: 7, Section: "Grammar", Prompt: "\"The number of students ___ increased steadily.\"", Options: []string{"have", "has", "are", "were"}, CorrectIndex: 1},
		{ID: 8, Section: "Grammar", Prompt: "\"Not only ___ the deadline, but he also exceeded expectations.\"", Options: []string{"he met", "did he meet", "he did meet", "met he"}, CorrectIndex: 1},
		{ID: 9, Section: "Grammar", Prompt: "\"The report, ___ was published in May, caused controversy.\"", Options: []string{"that", "what", "which", "who"}, CorrectIndex: 2},
	},
	domain.VariantTOEFL: {
		{ID: 0, Section: "Vocabulary", Prompt: "In academic texts, \"subsequent\" most nearly means:", Options: []string{"previous", "following", "simultaneous", "essential"}, CorrectIndex: 1},
		{ID: 1, Section: "Vocabulary", Prompt: "\"The professor's lecture was ___, covering every aspect of the topic.\"", Options: []string{"comprehensive", "comprehensible", "compressed", "complacent"}, CorrectIndex: 0},
		{ID: 2, Section: "Vocabulary", Prompt: "The word \"hypothesis\" refers to:", Options: []string{"a proven law", "a proposed explanation", "a final conclusion", "a statistical error"}, CorrectIndex: 1},
		{ID: 3, Section: "Reading", Prompt: "\"Glaciers act as reservoirs, releasing water during dry seasons.\" The glaciers' role is to:", Options: []string{"cause droughts", "store and supply water", "block rivers", "raise temperatures"}, CorrectIndex: 1},
		{ID: 4, Section: "Reading", Prompt: "\"The author concedes that the data is limited.\" The author:", Options: []string{"rejects the data", "admits a weakness", "ignores the data", "celebrates the data"}, CorrectIndex: 1},
		{ID: 5, Section: "Reading", Prompt: "\"Migration patterns shifted as a consequence of climate change.\" Climate change was the:", Options: []string{"result", "cause", "exception", "solution"}, CorrectIndex: 1},
		{ID: 6, Section: "Structure", Prompt: "\"The experiment, along with its results, ___ reviewed by the committee.\"", Options: []string{"were", "are", "was", "have been"}, CorrectIndex: 2},
		{ID: 7, Section: "Structure", Prompt: "\"Rarely ___ such a rapid economic recovery.\"", Options: []string{"economists have seen", "have economists seen", "economists seen", "seen economists have"}, CorrectIndex: 1},
		{ID: 8, Section: "Structure", Prompt: "\"The committee insisted that the proposal ___ revised.\"", Options: []string{"is", "was", "be", "being"}, CorrectIndex: 2},
		{ID: 9, Section: "Structure", Prompt: "\"___ the bridge was completed, traffic congestion eased.\"", Options: []string{"Once", "Despite", "Because of", "Although of"}, CorrectIndex: 0},
	},
}
