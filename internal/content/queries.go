package content

// Resource names double as the first cache key segment
const (
	ResourceAllCakes        = "all-cakes"
	ResourceFeaturedCakes   = "featured-cakes"
	ResourceCakesByCategory = "cakes-by-category"
	ResourceCakeBySlug      = "cake-by-slug"
)

const cakeProjection = `{
  _id,
  _createdAt,
  name,
  "slug": slug.current,
  description,
  size,
  pricing,
  mainImage,
  images,
  category,
  ingredients,
  allergens,
  featured
}`

const (
	allCakesQuery = `*[_type == "cake"] | order(_createdAt desc) ` + cakeProjection

	featuredCakesQuery = `*[_type == "cake" && featured == true] | order(_createdAt desc)[0...6] ` + cakeProjection

	cakesByCategoryQuery = `*[_type == "cake" && category == $category] | order(_createdAt desc) ` + cakeProjection

	cakeBySlugQuery = `*[_type == "cake" && slug.current == $slug][0] ` + cakeProjection
)
