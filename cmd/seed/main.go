package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/plateful/recipebook/config"
	"github.com/plateful/recipebook/internal/database"
	"github.com/plateful/recipebook/internal/model"
)

func strPtr(s string) *string { return &s }

var seedRecipes = []model.Recipe{
	{
		Title:       "Spicy and delicious chicken wings meal",
		Description: "Crispy chicken wings with a spicy kick, perfect for sharing with friends",
		Ingredients: model.StringArray{
			"2 lbs chicken wings", "1/2 cup hot sauce", "1/4 cup butter",
			"1 tsp garlic powder", "1 tsp paprika", "Salt and pepper",
			"Blue cheese dressing", "Celery sticks",
		},
		Instructions: "1. Preheat oven to 400°F\n2. Season wings with salt, pepper, and paprika\n3. Bake for 45 minutes until crispy\n4. Mix hot sauce with melted butter and garlic powder\n5. Toss wings in sauce\n6. Serve with blue cheese and celery",
		PrepTime:     15,
		CookTime:     45,
		Servings:     4,
		Difficulty:   model.DifficultyEasy,
		Category:     strPtr("Meat"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1527477396000-e27163b481c2?w=800"),
	},
	{
		Title:       "Big and Juicy Wagyu Beef Cheeseburger",
		Description: "A premium wagyu beef burger with melted cheese and fresh toppings",
		Ingredients: model.StringArray{
			"8 oz wagyu beef patty", "1 brioche bun", "2 slices cheddar cheese",
			"Lettuce", "Tomato", "Onion", "Pickles", "Special sauce",
		},
		Instructions: "1. Form wagyu beef into patty\n2. Season with salt and pepper\n3. Grill to medium-rare\n4. Add cheese and melt\n5. Toast bun\n6. Assemble with toppings\n7. Serve immediately",
		PrepTime:     10,
		CookTime:     10,
		Servings:     1,
		Difficulty:   model.DifficultyEasy,
		Category:     strPtr("Meat"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800"),
	},
	{
		Title:       "Fresh Lime Roasted Salmon with Ginger Sauce",
		Description: "Tender salmon fillets roasted with fresh lime and served with a zesty ginger sauce",
		Ingredients: model.StringArray{
			"4 salmon fillets", "2 limes", "2 tbsp fresh ginger", "2 cloves garlic",
			"2 tbsp soy sauce", "1 tbsp honey", "Olive oil", "Fresh herbs",
		},
		Instructions: "1. Preheat oven to 400°F\n2. Place salmon on baking sheet\n3. Squeeze lime over salmon\n4. Roast for 12-15 minutes\n5. Make ginger sauce with soy, honey, and ginger\n6. Drizzle sauce over salmon\n7. Garnish with herbs",
		PrepTime:     10,
		CookTime:     15,
		Servings:     4,
		Difficulty:   model.DifficultyMedium,
		Category:     strPtr("Healthy"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=800"),
	},
	{
		Title:       "Strawberry Oatmeal Pancake with Honey Syrup",
		Description: "Fluffy oatmeal pancakes topped with fresh strawberries and drizzled with honey",
		Ingredients: model.StringArray{
			"1 cup rolled oats", "1 cup flour", "2 eggs", "1 cup milk",
			"Fresh strawberries", "Honey", "Baking powder", "Vanilla extract",
		},
		Instructions: "1. Blend oats into flour\n2. Mix dry ingredients\n3. Whisk eggs and milk\n4. Combine wet and dry\n5. Cook pancakes on griddle\n6. Top with strawberries\n7. Drizzle with honey",
		PrepTime:     15,
		CookTime:     20,
		Servings:     4,
		Difficulty:   model.DifficultyEasy,
		Category:     strPtr("Breakfast"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?w=800"),
	},
	{
		Title:       "Classic Margherita Pizza with Fresh Basil",
		Description: "Traditional Italian pizza with tomato, mozzarella and fragrant basil leaves",
		Ingredients: model.StringArray{
			"Pizza dough", "San Marzano tomatoes", "Fresh mozzarella",
			"Fresh basil", "Olive oil", "Salt",
		},
		Instructions: "1. Stretch dough into a round\n2. Spread crushed tomatoes\n3. Tear mozzarella over top\n4. Bake at 500°F for 10-12 minutes\n5. Finish with basil and olive oil",
		PrepTime:     30,
		CookTime:     12,
		Servings:     2,
		Difficulty:   model.DifficultyMedium,
		Category:     strPtr("Italien"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=800"),
	},
	{
		Title:       "Decadent Chocolate Lava Cake",
		Description: "Individual chocolate cakes with a molten center, served warm",
		Ingredients: model.StringArray{
			"200g dark chocolate", "100g butter", "2 eggs", "2 egg yolks",
			"1/4 cup sugar", "2 tbsp flour", "Butter for ramekins",
		},
		Instructions: "1. Melt chocolate and butter\n2. Whisk eggs, yolks and sugar\n3. Fold in chocolate then flour\n4. Pour into buttered ramekins\n5. Bake at 425°F for 12 minutes\n6. Invert onto plates and serve immediately",
		PrepTime:     20,
		CookTime:     12,
		Servings:     4,
		Difficulty:   model.DifficultyHard,
		Category:     strPtr("Dessert"),
		ImageURL:     strPtr("https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=800"),
	},
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Seeding a non-empty catalog is a no-op, so the command stays idempotent.
	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to count recipes: %v", err)
	}
	if count > 0 {
		log.Printf("catalog already has %d recipes, nothing to do", count)
		return
	}

	if err := db.Create(&seedRecipes).Error; err != nil {
		log.Fatalf("failed to seed recipes: %v", err)
	}
	log.Printf("seeded %d recipes", len(seedRecipes))
}
