package store

import "salon-wellness-backend/models"

// Seed is the initial content of a Store.
type Seed struct {
	Clients  []models.Client
	Sessions []models.Session
}

// DemoSeed is the fixed dataset the dashboard starts with. Client aggregates
// match the sessions below.
func DemoSeed() Seed {
	return Seed{
		Clients: []models.Client{
			{
				ID:             "c-1",
				Name:           "佐藤さん",
				AgeLabel:       "40代・女性",
				Gender:         "女性",
				FirstVisitDate: "2025-01-10",
				LastVisit:      "2025-02-14",
				VisitCount:     2,
				CustomerNumber: "0001",
			},
			{
				ID:             "c-2",
				Name:           "鈴木さん",
				AgeLabel:       "50代・女性",
				Gender:         "女性",
				FirstVisitDate: "2025-01-18",
				LastVisit:      "2025-01-18",
				VisitCount:     1,
				CustomerNumber: "0002",
			},
			{
				ID:             "c-3",
				Name:           "高橋さん",
				AgeLabel:       "30代・男性",
				Gender:         "男性",
				FirstVisitDate: "2025-02-01",
				LastVisit:      "2025-02-01",
				VisitCount:     1,
				CustomerNumber: "0003",
			},
		},
		Sessions: []models.Session{
			{
				ID:          "s-1",
				ClientID:    "c-1",
				Date:        "2025-01-10",
				Menu:        "森の深眠スパ90分",
				VisitNumber: 1,
				StaffName:   "寺島",
				HRVBefore:   models.Float(28),
				HRVAfter:    models.Float(41),
				HRBefore:    models.Float(72),
				HRAfter:     models.Float(64),
				HYPBefore:   models.Float(3),
				Pre: models.PreSessionCheck{
					Fatigue: 8, Stiffness: 7, HeadHeaviness: 6, Stress: 7,
					SleepQualityWeek:    2,
					SleepHoursLastNight: "5〜6時間",
					UsualBedtime:        "24〜1時",
					UsualWakeTime:       "6〜7時",
					LifestyleTags:       []models.LifestyleTag{models.TagSmartphone, models.TagLateWork},
					MainConcern:         "寝つきが悪い",
				},
				Post: models.PostSessionFeeling{
					HeadLightness: 8, BodyRelax: 8, MentalRelax: 7, Satisfaction: 5,
					Comment: "頭がすっきりした",
				},
			},
			{
				ID:          "s-2",
				ClientID:    "c-2",
				Date:        "2025-01-18",
				Menu:        "森の深眠スパ60分",
				VisitNumber: 1,
				StaffName:   "スタッフA",
				HRVBefore:   models.Float(35),
				HRVAfter:    models.Float(38),
				Pre: models.PreSessionCheck{
					Fatigue: 6, Stiffness: 8, HeadHeaviness: 4, Stress: 5,
					SleepQualityWeek:    3,
					SleepHoursLastNight: "6〜7時間",
					UsualBedtime:        "22〜24時",
					UsualWakeTime:       "6時以前",
					LifestyleTags:       []models.LifestyleTag{models.TagBath},
				},
				Post: models.PostSessionFeeling{
					HeadLightness: 6, BodyRelax: 7, MentalRelax: 6, Satisfaction: 4,
				},
			},
			{
				ID:          "s-3",
				ClientID:    "c-3",
				Date:        "2025-02-01",
				Menu:        "森の深眠スパ90分",
				VisitNumber: 1,
				StaffName:   "スタッフB",
				HRVBefore:   models.Float(45),
				HRVAfter:    models.Float(38),
				Pre: models.PreSessionCheck{
					Fatigue: 9, Stiffness: 6, HeadHeaviness: 8, Stress: 9,
					SleepQualityWeek:    1,
					SleepHoursLastNight: "4時間未満",
					UsualBedtime:        "1時以降",
					UsualWakeTime:       "7〜8時",
					LifestyleTags:       []models.LifestyleTag{models.TagLateCaffeine, models.TagAlcohol},
					MainConcern:         "仕事のストレス",
				},
				Post: models.PostSessionFeeling{
					HeadLightness: 5, BodyRelax: 6, MentalRelax: 5, Satisfaction: 3,
					ActionNote: "次回は60分で様子を見る",
				},
			},
			{
				ID:          "s-4",
				ClientID:    "c-1",
				Date:        "2025-02-14",
				Menu:        "森の深眠スパ90分＋白髪カラー",
				VisitNumber: 2,
				StaffName:   "寺島",
				HRVBefore:   models.Float(31),
				Pre: models.PreSessionCheck{
					Fatigue: 6, Stiffness: 5, HeadHeaviness: 5, Stress: 5,
					SleepQualityWeek:    3,
					SleepHoursLastNight: "6〜7時間",
					UsualBedtime:        "24〜1時",
					UsualWakeTime:       "6〜7時",
					LifestyleTags:       []models.LifestyleTag{models.TagSmartphone, models.TagStretch},
				},
				Post: models.PostSessionFeeling{
					HeadLightness: 7, BodyRelax: 8, MentalRelax: 8, Satisfaction: 5,
				},
			},
		},
	}
}
