package config

import "salon-wellness-backend/models"

var lifestyleTagLabels = map[models.LifestyleTag]string{
	models.TagSmartphone:   "寝る前にスマホ・SNSを見る",
	models.TagLateCaffeine: "15時以降にカフェインをとる",
	models.TagAlcohol:      "就寝前のお酒",
	models.TagLateWork:     "寝る直前まで仕事・家事",
	models.TagBath:         "湯船につかる習慣がある",
	models.TagStretch:      "ストレッチやセルフケアをしている",
	models.TagNoRoutine:    "特に決まった過ごし方はない",
}

// Settings assembles what the intake and settings screens render from.
func (s SalonConfig) Settings() models.SalonSettings {
	tags := make([]models.Option, 0, len(models.LifestyleTags))
	for _, tag := range models.LifestyleTags {
		tags = append(tags, models.Option{Value: string(tag), Label: lifestyleTagLabels[tag]})
	}

	defaultMenu := s.DefaultMenu
	if defaultMenu == "" && len(s.Menus) > 0 {
		defaultMenu = s.Menus[0]
	}

	return models.SalonSettings{
		Name:        s.Name,
		Menus:       append([]string{}, s.Menus...),
		DefaultMenu: defaultMenu,
		Staff:       append([]string{}, s.Staff...),
		HRVBands: []models.HRVBand{
			{Label: "要ケア", Min: 0, Max: 20},
			{Label: "ふつう", Min: 20, Max: 40},
			{Label: "良い状態", Min: 40},
		},
		LifestyleTags: tags,
		SleepQualityOptions: []models.Option{
			{Value: "1", Label: "1: かなり悪い"},
			{Value: "2", Label: "2: 少し悪い"},
			{Value: "3", Label: "3: どちらともいえない"},
			{Value: "4", Label: "4: 少し良い"},
			{Value: "5", Label: "5: かなり良い"},
		},
		SleepHoursOptions: []string{"4時間未満", "4〜5時間", "5〜6時間", "6〜7時間", "7〜8時間", "8時間以上"},
		BedtimeOptions:    []string{"22時以前", "22〜24時", "24〜1時", "1時以降"},
		WakeTimeOptions:   []string{"6時以前", "6〜7時", "7〜8時", "8時以降"},
		GenderOptions:     []string{"女性", "男性", "その他"},
	}
}

// FirstStaff is the staff member pre-selected on a new intake.
func (s SalonConfig) FirstStaff() string {
	if len(s.Staff) == 0 {
		return ""
	}
	return s.Staff[0]
}
