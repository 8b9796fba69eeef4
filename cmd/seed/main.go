package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/ymatsuda/clinic-survey-api/internal/config"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	"github.com/ymatsuda/clinic-survey-api/internal/repository/postgres"
	"github.com/ymatsuda/clinic-survey-api/pkg/security"
)

type clinicSeed struct {
	name      string
	reviewURL string
	doctors   []string
}

var clinicSeeds = []clinicSeed{
	{"広島院", "https://g.page/elmclinic-hiroshima/review", []string{"相原先生", "松本院長", "花ノ木先生", "高木先生", "看護師"}},
	{"福岡院", "https://g.page/elmclinic-fukuoka/review", []string{"菊池院長", "白水先生", "早川先生", "看護師"}},
	{"岡山院", "https://g.page/elmclinic-okayama/review", []string{"高橋院長", "看護師"}},
	{"京都院", "https://g.page/elmclinic-kyoto/review", []string{"内山院長", "看護師"}},
	{"熊本院", "https://g.page/elmclinic-kumamoto/review", []string{"佐古院長", "境先生", "看護師"}},
	{"大阪院", "https://g.page/elmclinic-osaka/review", []string{"佐藤院長", "看護師"}},
	{"神戸院", "https://g.page/elmclinic-kobe/review", []string{"七里院長", "看護師"}},
	{"表参道院", "https://g.page/elmclinic-omotesando/review", []string{"土井院長", "藤内先生", "看護師"}},
	{"麻布院", "https://g.page/elmclinic-azabu/review", []string{"先生", "看護師"}},
}

var menuSeeds = []string{
	"ボトックス注射",
	"ヒアルロン酸注射",
	"糸リフト",
	"アートメイク",
	"フォトフェイシャル",
	"ポテンツァ",
	"その他",
}

var questionSeeds = []model.Question{
	{Key: "gender", Label: "性別を選択してください", DisplayOrder: 1},
	{Key: "ageGroup", Label: "年齢層を選択してください", DisplayOrder: 2},
	{Key: "clinicId", Label: "どちらの院で施術を受けられましたか？", DisplayOrder: 3},
	{Key: "doctorId", Label: "どちらの先生に施術していただきましたか？", DisplayOrder: 4},
	{Key: "treatmentDate", Label: "施術日を選択してください", DisplayOrder: 5},
	{Key: "treatmentMenu", Label: "どの施術メニューを受けられましたか？", DisplayOrder: 6},
	{Key: "resultSatisfaction", Label: "施術結果に満足できましたか？", DisplayOrder: 7},
	{Key: "counselingSatisfaction", Label: "カウンセリングはご希望に沿った内容でしたか？", DisplayOrder: 8},
	{Key: "atmosphereRating", Label: "院内の雰囲気はいかがでしたか？", DisplayOrder: 9},
	{Key: "staffServiceRating", Label: "スタッフの対応はいかがでしたか？", DisplayOrder: 10},
	{Key: "message", Label: "伝えたいことの他に改善点などがありましたら…（任意）", DisplayOrder: 11},
}

var optionSeeds = map[model.OptionCategory][]string{
	model.CategoryGender:                 {"男性", "女性"},
	model.CategoryAgeGroup:               {"10代", "20代", "30代", "40代", "50代", "60代", "70代", "80代"},
	model.CategorySatisfaction:           {"大変満足", "満足", "普通", "やや不満", "不満"},
	model.CategoryResultSatisfaction:     {"大変満足", "満足", "普通", "やや不満", "不満"},
	model.CategoryCounselingSatisfaction: {"とても満足", "満足", "普通", "やや不満", "不満"},
	model.CategoryAtmosphereRating:       {"とても良い", "良い", "普通", "やや悪い", "悪い"},
	model.CategoryStaffServiceRating:     {"とても丁寧だった", "丁寧だった", "普通", "やや不満", "不満"},
}

func main() {
	adminUser := flag.String("admin-user", "admin", "admin username to create")
	adminPassword := flag.String("admin-password", "", "admin password (skipped when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	menuRepo := postgres.NewTreatmentMenuRepository(db)
	optionRepo := postgres.NewQuestionOptionRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	adminRepo := postgres.NewAdminUserRepository(db)

	if err := seedClinics(ctx, clinicRepo, doctorRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed clinics")
	}
	if err := seedMenus(ctx, menuRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed treatment menus")
	}
	if err := seedQuestions(ctx, questionRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed questions")
	}
	if err := seedOptions(ctx, optionRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed question options")
	}
	if *adminPassword != "" {
		if err := seedAdmin(ctx, adminRepo, *adminUser, *adminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	log.Info().Msg("seed completed")
}

func seedClinics(ctx context.Context, clinicRepo repository.ClinicRepository, doctorRepo repository.DoctorRepository) error {
	existing, err := clinicRepo.List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, c := range existing {
		byName[c.Name] = true
	}

	for i, seed := range clinicSeeds {
		if byName[seed.name] {
			log.Info().Str("clinic", seed.name).Msg("clinic already exists, skipping")
			continue
		}
		clinic := &model.Clinic{
			Name:            seed.name,
			GoogleReviewURL: seed.reviewURL,
			DisplayOrder:    i,
		}
		if err := clinicRepo.Create(ctx, clinic); err != nil {
			return err
		}
		for j, name := range seed.doctors {
			doctor := &model.Doctor{
				ClinicID:     clinic.ID,
				Name:         name,
				DisplayOrder: j,
			}
			if err := doctorRepo.Create(ctx, doctor); err != nil {
				return err
			}
		}
		log.Info().Str("clinic", seed.name).Int("doctors", len(seed.doctors)).Msg("created clinic")
	}
	return nil
}

func seedMenus(ctx context.Context, repo repository.TreatmentMenuRepository) error {
	for i, name := range menuSeeds {
		_, err := repo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		menu := &model.TreatmentMenu{Name: name, DisplayOrder: i}
		if err := repo.Create(ctx, menu); err != nil {
			return err
		}
		log.Info().Str("menu", name).Msg("created treatment menu")
	}
	return nil
}

func seedQuestions(ctx context.Context, repo repository.QuestionRepository) error {
	for _, seed := range questionSeeds {
		q := seed
		if err := repo.Upsert(ctx, &q); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(questionSeeds)).Msg("upserted questions")
	return nil
}

func seedOptions(ctx context.Context, repo repository.QuestionOptionRepository) error {
	for _, category := range model.OptionCategories {
		values := optionSeeds[category]
		for i, value := range values {
			_, err := repo.GetByCategoryValue(ctx, category, value)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			option := &model.QuestionOption{
				Category:     category,
				Label:        value,
				Value:        value,
				DisplayOrder: i,
			}
			if err := repo.Create(ctx, option); err != nil {
				return err
			}
		}
	}
	log.Info().Msg("seeded question options")
	return nil
}

func seedAdmin(ctx context.Context, repo repository.AdminUserRepository, username, password string) error {
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		log.Info().Str("username", username).Msg("admin user already exists, skipping")
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hasher := security.NewBcryptHasher(0)
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	user := &model.AdminUser{Username: username, PasswordHash: hash}
	if err := repo.Create(ctx, user); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("created admin user")
	return nil
}
